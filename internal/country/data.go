package country

import "strings"

// data.go carries the static resolution table. The spec for this table is
// ISO 3166-1 plus a hand-maintained alias list for colloquial, former and
// disputed names that the official table does not carry. Shipping the data
// explicitly (instead of enumerating platform locales at runtime) keeps
// resolution identical on every build target.

// record is one country in the static table.
type record struct {
	alpha2  string
	alpha3  string
	name    string
	aliases []string
}

var records = []record{
	{"AD", "AND", "Andorra", nil},
	{"AE", "ARE", "United Arab Emirates", []string{"UAE", "Emirates"}},
	{"AF", "AFG", "Afghanistan", nil},
	{"AG", "ATG", "Antigua and Barbuda", []string{"Antigua"}},
	{"AI", "AIA", "Anguilla", nil},
	{"AL", "ALB", "Albania", nil},
	{"AM", "ARM", "Armenia", nil},
	{"AO", "AGO", "Angola", nil},
	{"AQ", "ATA", "Antarctica", nil},
	{"AR", "ARG", "Argentina", nil},
	{"AS", "ASM", "American Samoa", nil},
	{"AT", "AUT", "Austria", []string{"Österreich"}},
	{"AU", "AUS", "Australia", nil},
	{"AW", "ABW", "Aruba", nil},
	{"AX", "ALA", "Åland Islands", []string{"Aland"}},
	{"AZ", "AZE", "Azerbaijan", nil},
	{"BA", "BIH", "Bosnia and Herzegovina", []string{"Bosnia"}},
	{"BB", "BRB", "Barbados", nil},
	{"BD", "BGD", "Bangladesh", nil},
	{"BE", "BEL", "Belgium", nil},
	{"BF", "BFA", "Burkina Faso", nil},
	{"BG", "BGR", "Bulgaria", nil},
	{"BH", "BHR", "Bahrain", nil},
	{"BI", "BDI", "Burundi", nil},
	{"BJ", "BEN", "Benin", nil},
	{"BL", "BLM", "Saint Barthélemy", nil},
	{"BM", "BMU", "Bermuda", nil},
	{"BN", "BRN", "Brunei Darussalam", []string{"Brunei"}},
	{"BO", "BOL", "Bolivia", []string{"Plurinational State of Bolivia"}},
	{"BQ", "BES", "Bonaire, Sint Eustatius and Saba", []string{"Bonaire"}},
	{"BR", "BRA", "Brazil", []string{"Brasil"}},
	{"BS", "BHS", "Bahamas", nil},
	{"BT", "BTN", "Bhutan", nil},
	{"BV", "BVT", "Bouvet Island", nil},
	{"BW", "BWA", "Botswana", nil},
	{"BY", "BLR", "Belarus", []string{"Byelorussia"}},
	{"BZ", "BLZ", "Belize", nil},
	{"CA", "CAN", "Canada", nil},
	{"CC", "CCK", "Cocos Islands", []string{"Keeling Islands"}},
	{"CD", "COD", "Democratic Republic of the Congo", []string{"DR Congo", "DRC", "Congo-Kinshasa", "Zaire"}},
	{"CF", "CAF", "Central African Republic", nil},
	{"CG", "COG", "Congo", []string{"Republic of the Congo", "Congo-Brazzaville"}},
	{"CH", "CHE", "Switzerland", []string{"Schweiz", "Suisse"}},
	{"CI", "CIV", "Côte d'Ivoire", []string{"Ivory Coast"}},
	{"CK", "COK", "Cook Islands", nil},
	{"CL", "CHL", "Chile", nil},
	{"CM", "CMR", "Cameroon", nil},
	{"CN", "CHN", "China", []string{"People's Republic of China", "PRC"}},
	{"CO", "COL", "Colombia", nil},
	{"CR", "CRI", "Costa Rica", nil},
	{"CU", "CUB", "Cuba", nil},
	{"CV", "CPV", "Cabo Verde", []string{"Cape Verde"}},
	{"CW", "CUW", "Curaçao", nil},
	{"CX", "CXR", "Christmas Island", nil},
	{"CY", "CYP", "Cyprus", nil},
	{"CZ", "CZE", "Czechia", []string{"Czech Republic"}},
	{"DE", "DEU", "Germany", []string{"Deutschland"}},
	{"DJ", "DJI", "Djibouti", nil},
	{"DK", "DNK", "Denmark", []string{"Danmark"}},
	{"DM", "DMA", "Dominica", nil},
	{"DO", "DOM", "Dominican Republic", nil},
	{"DZ", "DZA", "Algeria", nil},
	{"EC", "ECU", "Ecuador", nil},
	{"EE", "EST", "Estonia", []string{"Eesti"}},
	{"EG", "EGY", "Egypt", nil},
	{"EH", "ESH", "Western Sahara", nil},
	{"ER", "ERI", "Eritrea", nil},
	{"ES", "ESP", "Spain", []string{"España"}},
	{"ET", "ETH", "Ethiopia", nil},
	{"FI", "FIN", "Finland", []string{"Suomi"}},
	{"FJ", "FJI", "Fiji", nil},
	{"FK", "FLK", "Falkland Islands", []string{"Malvinas"}},
	{"FM", "FSM", "Micronesia", []string{"Federated States of Micronesia"}},
	{"FO", "FRO", "Faroe Islands", []string{"Faeroe Islands"}},
	{"FR", "FRA", "France", nil},
	{"GA", "GAB", "Gabon", nil},
	{"GB", "GBR", "United Kingdom", []string{"UK", "Great Britain", "Britain", "England", "Scotland", "Wales", "Northern Ireland"}},
	{"GD", "GRD", "Grenada", nil},
	{"GE", "GEO", "Georgia", nil},
	{"GF", "GUF", "French Guiana", nil},
	{"GG", "GGY", "Guernsey", nil},
	{"GH", "GHA", "Ghana", nil},
	{"GI", "GIB", "Gibraltar", nil},
	{"GL", "GRL", "Greenland", nil},
	{"GM", "GMB", "Gambia", nil},
	{"GN", "GIN", "Guinea", nil},
	{"GP", "GLP", "Guadeloupe", nil},
	{"GQ", "GNQ", "Equatorial Guinea", nil},
	{"GR", "GRC", "Greece", []string{"Hellas"}},
	{"GS", "SGS", "South Georgia and the South Sandwich Islands", []string{"South Georgia"}},
	{"GT", "GTM", "Guatemala", nil},
	{"GU", "GUM", "Guam", nil},
	{"GW", "GNB", "Guinea-Bissau", nil},
	{"GY", "GUY", "Guyana", nil},
	{"HK", "HKG", "Hong Kong", nil},
	{"HM", "HMD", "Heard Island and McDonald Islands", nil},
	{"HN", "HND", "Honduras", nil},
	{"HR", "HRV", "Croatia", []string{"Hrvatska"}},
	{"HT", "HTI", "Haiti", nil},
	{"HU", "HUN", "Hungary", []string{"Magyarország"}},
	{"ID", "IDN", "Indonesia", nil},
	{"IE", "IRL", "Ireland", []string{"Republic of Ireland"}},
	{"IL", "ISR", "Israel", nil},
	{"IM", "IMN", "Isle of Man", nil},
	{"IN", "IND", "India", nil},
	{"IO", "IOT", "British Indian Ocean Territory", nil},
	{"IQ", "IRQ", "Iraq", nil},
	{"IR", "IRN", "Iran", []string{"Islamic Republic of Iran", "Persia"}},
	{"IS", "ISL", "Iceland", []string{"Ísland"}},
	{"IT", "ITA", "Italy", []string{"Italia"}},
	{"JE", "JEY", "Jersey", nil},
	{"JM", "JAM", "Jamaica", nil},
	{"JO", "JOR", "Jordan", nil},
	{"JP", "JPN", "Japan", []string{"Nippon"}},
	{"KE", "KEN", "Kenya", nil},
	{"KG", "KGZ", "Kyrgyzstan", []string{"Kirghizia"}},
	{"KH", "KHM", "Cambodia", []string{"Kampuchea"}},
	{"KI", "KIR", "Kiribati", nil},
	{"KM", "COM", "Comoros", nil},
	{"KN", "KNA", "Saint Kitts and Nevis", []string{"St Kitts"}},
	{"KP", "PRK", "North Korea", []string{"Democratic People's Republic of Korea", "DPRK"}},
	{"KR", "KOR", "South Korea", []string{"Republic of Korea", "Korea"}},
	{"KW", "KWT", "Kuwait", nil},
	{"KY", "CYM", "Cayman Islands", nil},
	{"KZ", "KAZ", "Kazakhstan", nil},
	{"LA", "LAO", "Laos", []string{"Lao People's Democratic Republic"}},
	{"LB", "LBN", "Lebanon", nil},
	{"LC", "LCA", "Saint Lucia", []string{"St Lucia"}},
	{"LI", "LIE", "Liechtenstein", nil},
	{"LK", "LKA", "Sri Lanka", []string{"Ceylon"}},
	{"LR", "LBR", "Liberia", nil},
	{"LS", "LSO", "Lesotho", nil},
	{"LT", "LTU", "Lithuania", []string{"Lietuva"}},
	{"LU", "LUX", "Luxembourg", nil},
	{"LV", "LVA", "Latvia", []string{"Latvija"}},
	{"LY", "LBY", "Libya", nil},
	{"MA", "MAR", "Morocco", nil},
	{"MC", "MCO", "Monaco", nil},
	{"MD", "MDA", "Moldova", []string{"Republic of Moldova"}},
	{"ME", "MNE", "Montenegro", nil},
	{"MF", "MAF", "Saint Martin", nil},
	{"MG", "MDG", "Madagascar", nil},
	{"MH", "MHL", "Marshall Islands", nil},
	{"MK", "MKD", "North Macedonia", []string{"Macedonia", "FYROM"}},
	{"ML", "MLI", "Mali", nil},
	{"MM", "MMR", "Myanmar", []string{"Burma"}},
	{"MN", "MNG", "Mongolia", nil},
	{"MO", "MAC", "Macao", []string{"Macau"}},
	{"MP", "MNP", "Northern Mariana Islands", nil},
	{"MQ", "MTQ", "Martinique", nil},
	{"MR", "MRT", "Mauritania", nil},
	{"MS", "MSR", "Montserrat", nil},
	{"MT", "MLT", "Malta", nil},
	{"MU", "MUS", "Mauritius", nil},
	{"MV", "MDV", "Maldives", nil},
	{"MW", "MWI", "Malawi", nil},
	{"MX", "MEX", "Mexico", []string{"México"}},
	{"MY", "MYS", "Malaysia", nil},
	{"MZ", "MOZ", "Mozambique", nil},
	{"NA", "NAM", "Namibia", nil},
	{"NC", "NCL", "New Caledonia", nil},
	{"NE", "NER", "Niger", nil},
	{"NF", "NFK", "Norfolk Island", nil},
	{"NG", "NGA", "Nigeria", nil},
	{"NI", "NIC", "Nicaragua", nil},
	{"NL", "NLD", "Netherlands", []string{"Holland", "Nederland"}},
	{"NO", "NOR", "Norway", []string{"Norge"}},
	{"NP", "NPL", "Nepal", nil},
	{"NR", "NRU", "Nauru", nil},
	{"NU", "NIU", "Niue", nil},
	{"NZ", "NZL", "New Zealand", []string{"Aotearoa"}},
	{"OM", "OMN", "Oman", nil},
	{"PA", "PAN", "Panama", nil},
	{"PE", "PER", "Peru", []string{"Perú"}},
	{"PF", "PYF", "French Polynesia", []string{"Tahiti"}},
	{"PG", "PNG", "Papua New Guinea", nil},
	{"PH", "PHL", "Philippines", nil},
	{"PK", "PAK", "Pakistan", nil},
	{"PL", "POL", "Poland", []string{"Polska"}},
	{"PM", "SPM", "Saint Pierre and Miquelon", nil},
	{"PN", "PCN", "Pitcairn", nil},
	{"PR", "PRI", "Puerto Rico", nil},
	{"PS", "PSE", "Palestine", []string{"State of Palestine", "Palestinian Territory", "West Bank", "Gaza"}},
	{"PT", "PRT", "Portugal", nil},
	{"PW", "PLW", "Palau", nil},
	{"PY", "PRY", "Paraguay", nil},
	{"QA", "QAT", "Qatar", nil},
	{"RE", "REU", "Réunion", nil},
	{"RO", "ROU", "Romania", []string{"România"}},
	{"RS", "SRB", "Serbia", nil},
	{"RU", "RUS", "Russia", []string{"Russian Federation", "USSR", "Soviet Union"}},
	{"RW", "RWA", "Rwanda", nil},
	{"SA", "SAU", "Saudi Arabia", nil},
	{"SB", "SLB", "Solomon Islands", nil},
	{"SC", "SYC", "Seychelles", nil},
	{"SD", "SDN", "Sudan", nil},
	{"SE", "SWE", "Sweden", []string{"Sverige"}},
	{"SG", "SGP", "Singapore", nil},
	{"SH", "SHN", "Saint Helena", nil},
	{"SI", "SVN", "Slovenia", []string{"Slovenija"}},
	{"SJ", "SJM", "Svalbard and Jan Mayen", []string{"Svalbard"}},
	{"SK", "SVK", "Slovakia", []string{"Slovensko"}},
	{"SL", "SLE", "Sierra Leone", nil},
	{"SM", "SMR", "San Marino", nil},
	{"SN", "SEN", "Senegal", nil},
	{"SO", "SOM", "Somalia", nil},
	{"SR", "SUR", "Suriname", nil},
	{"SS", "SSD", "South Sudan", nil},
	{"ST", "STP", "Sao Tome and Principe", []string{"São Tomé"}},
	{"SV", "SLV", "El Salvador", nil},
	{"SX", "SXM", "Sint Maarten", nil},
	{"SY", "SYR", "Syria", []string{"Syrian Arab Republic"}},
	{"SZ", "SWZ", "Eswatini", []string{"Swaziland"}},
	{"TC", "TCA", "Turks and Caicos Islands", nil},
	{"TD", "TCD", "Chad", nil},
	{"TF", "ATF", "French Southern Territories", nil},
	{"TG", "TGO", "Togo", nil},
	{"TH", "THA", "Thailand", []string{"Siam"}},
	{"TJ", "TJK", "Tajikistan", nil},
	{"TK", "TKL", "Tokelau", nil},
	{"TL", "TLS", "Timor-Leste", []string{"East Timor"}},
	{"TM", "TKM", "Turkmenistan", nil},
	{"TN", "TUN", "Tunisia", nil},
	{"TO", "TON", "Tonga", nil},
	{"TR", "TUR", "Türkiye", []string{"Turkey"}},
	{"TT", "TTO", "Trinidad and Tobago", []string{"Trinidad"}},
	{"TV", "TUV", "Tuvalu", nil},
	{"TW", "TWN", "Taiwan", []string{"Republic of China", "Chinese Taipei"}},
	{"TZ", "TZA", "Tanzania", []string{"United Republic of Tanzania"}},
	{"UA", "UKR", "Ukraine", []string{"Ukraina"}},
	{"UG", "UGA", "Uganda", nil},
	{"UM", "UMI", "United States Minor Outlying Islands", nil},
	{"US", "USA", "United States", []string{"United States of America", "America", "U.S.A.", "U.S."}},
	{"UY", "URY", "Uruguay", nil},
	{"UZ", "UZB", "Uzbekistan", nil},
	{"VA", "VAT", "Holy See", []string{"Vatican", "Vatican City"}},
	{"VC", "VCT", "Saint Vincent and the Grenadines", []string{"St Vincent"}},
	{"VE", "VEN", "Venezuela", []string{"Bolivarian Republic of Venezuela"}},
	{"VG", "VGB", "British Virgin Islands", nil},
	{"VI", "VIR", "U.S. Virgin Islands", []string{"US Virgin Islands"}},
	{"VN", "VNM", "Vietnam", []string{"Viet Nam"}},
	{"VU", "VUT", "Vanuatu", nil},
	{"WF", "WLF", "Wallis and Futuna", nil},
	{"WS", "WSM", "Samoa", []string{"Western Samoa"}},
	{"XK", "XKX", "Kosovo", nil},
	{"YE", "YEM", "Yemen", nil},
	{"YT", "MYT", "Mayotte", nil},
	{"ZA", "ZAF", "South Africa", nil},
	{"ZM", "ZMB", "Zambia", nil},
	{"ZW", "ZWE", "Zimbabwe", nil},
}

// nameIndex maps Normalize(name) to the alpha-2 code. Built once at init
// from official names, alpha-3 codes and the alias lists. First registration
// wins on collision, so official names take precedence over aliases.
var nameIndex = buildNameIndex()

func buildNameIndex() map[string]string {
	idx := make(map[string]string, len(records)*3)
	register := func(key, code string) {
		if key == "" {
			return
		}
		if _, taken := idx[key]; !taken {
			idx[key] = code
		}
	}
	for _, rec := range records {
		register(Normalize(rec.name), rec.alpha2)
		register(strings.ToLower(rec.alpha3), rec.alpha2)
	}
	// Aliases in a second pass so no alias can shadow an official name.
	for _, rec := range records {
		for _, alias := range rec.aliases {
			register(Normalize(alias), rec.alpha2)
		}
	}
	return idx
}
