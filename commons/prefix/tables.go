// SPDX-License-Identifier: GPL-3.0-only

package prefix

// DefaultBlockedCallingCodes are destinations refused regardless of classification.
var DefaultBlockedCallingCodes = []string{"53", "98", "850", "963"}

var canadaAreaCodes = newAreaCodeSet(
	"204", "226", "236", "249", "250", "257", "263", "289", "306", "343",
	"354", "365", "367", "368", "382", "403", "416", "418", "428", "431",
	"437", "438", "450", "460", "468", "474", "506", "514", "519", "537",
	"548", "579", "581", "584", "587", "600", "604", "613", "622", "639",
	"647", "672", "683", "705", "709", "742", "753", "778", "780", "782",
	"807", "819", "825", "867", "873", "879", "902", "905", "942",
)

var puertoRicoAreaCodes = newAreaCodeSet("787", "939")

var (
	kazakhstanValid  = newAreaCodeSet("700", "701", "702", "705", "706", "707", "708", "747", "771", "775", "776", "777", "778")
	kazakhstanReject = newAreaCodeSet("71", "72")
)

var (
	isleOfManPrefixes = newAreaCodeSet("7524", "7624", "7924")
	guernseyPrefixes  = newAreaCodeSet("7781", "7839", "7911")
	jerseyPrefixes    = newAreaCodeSet("7509", "7797", "7829", "7937")
)

var (
	indianOceanDiscard = newAreaCodeSet("262", "269")
	mayottePrefixes    = newAreaCodeSet("639")
	reunionPrefixes    = newAreaCodeSet("692", "693")
)

const (
	alandPrefix          = "457"
	finlandFirstDigit    = '4'
	finlandSecondaryPair = "50"
	norfolkPrefix        = "38"
)

// baseTable lists every known calling code with its default country.
// Disambiguation rules are attached in rules.go.
var baseTable = []CallingCodeRule{
	{CallingCode: "1", Country: "US", Name: "United States"},
	{CallingCode: "7", Country: "RU", Name: "Russia"},
	{CallingCode: "20", Country: "EG", Name: "Egypt"},
	{CallingCode: "27", Country: "ZA", Name: "South Africa"},
	{CallingCode: "30", Country: "GR", Name: "Greece"},
	{CallingCode: "31", Country: "NL", Name: "Netherlands"},
	{CallingCode: "32", Country: "BE", Name: "Belgium"},
	{CallingCode: "33", Country: "FR", Name: "France"},
	{CallingCode: "34", Country: "ES", Name: "Spain"},
	{CallingCode: "36", Country: "HU", Name: "Hungary"},
	{CallingCode: "39", Country: "IT", Name: "Italy"},
	{CallingCode: "40", Country: "RO", Name: "Romania"},
	{CallingCode: "41", Country: "CH", Name: "Switzerland"},
	{CallingCode: "43", Country: "AT", Name: "Austria"},
	{CallingCode: "44", Country: "GB", Name: "United Kingdom"},
	{CallingCode: "45", Country: "DK", Name: "Denmark"},
	{CallingCode: "46", Country: "SE", Name: "Sweden"},
	{CallingCode: "47", Country: "NO", Name: "Norway"},
	{CallingCode: "48", Country: "PL", Name: "Poland"},
	{CallingCode: "49", Country: "DE", Name: "Germany"},
	{CallingCode: "51", Country: "PE", Name: "Peru"},
	{CallingCode: "52", Country: "MX", Name: "Mexico"},
	{CallingCode: "53", Country: "CU", Name: "Cuba"},
	{CallingCode: "54", Country: "AR", Name: "Argentina"},
	{CallingCode: "55", Country: "BR", Name: "Brazil"},
	{CallingCode: "56", Country: "CL", Name: "Chile"},
	{CallingCode: "57", Country: "CO", Name: "Colombia"},
	{CallingCode: "58", Country: "VE", Name: "Venezuela"},
	{CallingCode: "60", Country: "MY", Name: "Malaysia"},
	{CallingCode: "61", Country: "AU", Name: "Australia"},
	{CallingCode: "62", Country: "ID", Name: "Indonesia"},
	{CallingCode: "63", Country: "PH", Name: "Philippines"},
	{CallingCode: "64", Country: "NZ", Name: "New Zealand"},
	{CallingCode: "65", Country: "SG", Name: "Singapore"},
	{CallingCode: "66", Country: "TH", Name: "Thailand"},
	{CallingCode: "81", Country: "JP", Name: "Japan"},
	{CallingCode: "82", Country: "KR", Name: "South Korea"},
	{CallingCode: "84", Country: "VN", Name: "Vietnam"},
	{CallingCode: "86", Country: "CN", Name: "China"},
	{CallingCode: "90", Country: "TR", Name: "Turkey"},
	{CallingCode: "91", Country: "IN", Name: "India"},
	{CallingCode: "92", Country: "PK", Name: "Pakistan"},
	{CallingCode: "93", Country: "AF", Name: "Afghanistan"},
	{CallingCode: "94", Country: "LK", Name: "Sri Lanka"},
	{CallingCode: "95", Country: "MM", Name: "Myanmar"},
	{CallingCode: "98", Country: "IR", Name: "Iran"},
	{CallingCode: "211", Country: "SS", Name: "South Sudan"},
	{CallingCode: "212", Country: "MA", Name: "Morocco"},
	{CallingCode: "213", Country: "DZ", Name: "Algeria"},
	{CallingCode: "216", Country: "TN", Name: "Tunisia"},
	{CallingCode: "218", Country: "LY", Name: "Libya"},
	{CallingCode: "220", Country: "GM", Name: "Gambia"},
	{CallingCode: "221", Country: "SN", Name: "Senegal"},
	{CallingCode: "222", Country: "MR", Name: "Mauritania"},
	{CallingCode: "223", Country: "ML", Name: "Mali"},
	{CallingCode: "224", Country: "GN", Name: "Guinea"},
	{CallingCode: "225", Country: "CI", Name: "Côte d'Ivoire"},
	{CallingCode: "226", Country: "BF", Name: "Burkina Faso"},
	{CallingCode: "227", Country: "NE", Name: "Niger"},
	{CallingCode: "228", Country: "TG", Name: "Togo"},
	{CallingCode: "229", Country: "BJ", Name: "Benin"},
	{CallingCode: "230", Country: "MU", Name: "Mauritius"},
	{CallingCode: "231", Country: "LR", Name: "Liberia"},
	{CallingCode: "232", Country: "SL", Name: "Sierra Leone"},
	{CallingCode: "233", Country: "GH", Name: "Ghana"},
	{CallingCode: "234", Country: "NG", Name: "Nigeria"},
	{CallingCode: "235", Country: "TD", Name: "Chad"},
	{CallingCode: "236", Country: "CF", Name: "Central African Republic"},
	{CallingCode: "237", Country: "CM", Name: "Cameroon"},
	{CallingCode: "238", Country: "CV", Name: "Cape Verde"},
	{CallingCode: "239", Country: "ST", Name: "São Tomé and Príncipe"},
	{CallingCode: "240", Country: "GQ", Name: "Equatorial Guinea"},
	{CallingCode: "241", Country: "GA", Name: "Gabon"},
	{CallingCode: "242", Country: "CG", Name: "Republic of the Congo"},
	{CallingCode: "243", Country: "CD", Name: "DR Congo"},
	{CallingCode: "244", Country: "AO", Name: "Angola"},
	{CallingCode: "245", Country: "GW", Name: "Guinea-Bissau"},
	{CallingCode: "248", Country: "SC", Name: "Seychelles"},
	{CallingCode: "249", Country: "SD", Name: "Sudan"},
	{CallingCode: "250", Country: "RW", Name: "Rwanda"},
	{CallingCode: "251", Country: "ET", Name: "Ethiopia"},
	{CallingCode: "252", Country: "SO", Name: "Somalia"},
	{CallingCode: "253", Country: "DJ", Name: "Djibouti"},
	{CallingCode: "254", Country: "KE", Name: "Kenya"},
	{CallingCode: "255", Country: "TZ", Name: "Tanzania"},
	{CallingCode: "256", Country: "UG", Name: "Uganda"},
	{CallingCode: "257", Country: "BI", Name: "Burundi"},
	{CallingCode: "258", Country: "MZ", Name: "Mozambique"},
	{CallingCode: "260", Country: "ZM", Name: "Zambia"},
	{CallingCode: "261", Country: "MG", Name: "Madagascar"},
	{CallingCode: "262", Country: "RE", Name: "Réunion"},
	{CallingCode: "263", Country: "ZW", Name: "Zimbabwe"},
	{CallingCode: "264", Country: "NA", Name: "Namibia"},
	{CallingCode: "265", Country: "MW", Name: "Malawi"},
	{CallingCode: "266", Country: "LS", Name: "Lesotho"},
	{CallingCode: "267", Country: "BW", Name: "Botswana"},
	{CallingCode: "268", Country: "SZ", Name: "Eswatini"},
	{CallingCode: "269", Country: "KM", Name: "Comoros"},
	{CallingCode: "290", Country: "SH", Name: "Saint Helena"},
	{CallingCode: "291", Country: "ER", Name: "Eritrea"},
	{CallingCode: "297", Country: "AW", Name: "Aruba"},
	{CallingCode: "298", Country: "FO", Name: "Faroe Islands"},
	{CallingCode: "299", Country: "GL", Name: "Greenland"},
	{CallingCode: "350", Country: "GI", Name: "Gibraltar"},
	{CallingCode: "351", Country: "PT", Name: "Portugal"},
	{CallingCode: "352", Country: "LU", Name: "Luxembourg"},
	{CallingCode: "353", Country: "IE", Name: "Ireland"},
	{CallingCode: "354", Country: "IS", Name: "Iceland"},
	{CallingCode: "355", Country: "AL", Name: "Albania"},
	{CallingCode: "356", Country: "MT", Name: "Malta"},
	{CallingCode: "357", Country: "CY", Name: "Cyprus"},
	{CallingCode: "358", Country: "FI", Name: "Finland"},
	{CallingCode: "359", Country: "BG", Name: "Bulgaria"},
	{CallingCode: "370", Country: "LT", Name: "Lithuania"},
	{CallingCode: "371", Country: "LV", Name: "Latvia"},
	{CallingCode: "372", Country: "EE", Name: "Estonia"},
	{CallingCode: "373", Country: "MD", Name: "Moldova"},
	{CallingCode: "374", Country: "AM", Name: "Armenia"},
	{CallingCode: "375", Country: "BY", Name: "Belarus"},
	{CallingCode: "376", Country: "AD", Name: "Andorra"},
	{CallingCode: "377", Country: "MC", Name: "Monaco"},
	{CallingCode: "378", Country: "SM", Name: "San Marino"},
	{CallingCode: "380", Country: "UA", Name: "Ukraine"},
	{CallingCode: "381", Country: "RS", Name: "Serbia"},
	{CallingCode: "382", Country: "ME", Name: "Montenegro"},
	{CallingCode: "383", Country: "XK", Name: "Kosovo"},
	{CallingCode: "385", Country: "HR", Name: "Croatia"},
	{CallingCode: "386", Country: "SI", Name: "Slovenia"},
	{CallingCode: "387", Country: "BA", Name: "Bosnia and Herzegovina"},
	{CallingCode: "389", Country: "MK", Name: "North Macedonia"},
	{CallingCode: "420", Country: "CZ", Name: "Czechia"},
	{CallingCode: "421", Country: "SK", Name: "Slovakia"},
	{CallingCode: "423", Country: "LI", Name: "Liechtenstein"},
	{CallingCode: "500", Country: "FK", Name: "Falkland Islands"},
	{CallingCode: "501", Country: "BZ", Name: "Belize"},
	{CallingCode: "502", Country: "GT", Name: "Guatemala"},
	{CallingCode: "503", Country: "SV", Name: "El Salvador"},
	{CallingCode: "504", Country: "HN", Name: "Honduras"},
	{CallingCode: "505", Country: "NI", Name: "Nicaragua"},
	{CallingCode: "506", Country: "CR", Name: "Costa Rica"},
	{CallingCode: "507", Country: "PA", Name: "Panama"},
	{CallingCode: "508", Country: "PM", Name: "Saint Pierre and Miquelon"},
	{CallingCode: "509", Country: "HT", Name: "Haiti"},
	{CallingCode: "590", Country: "GP", Name: "Guadeloupe"},
	{CallingCode: "591", Country: "BO", Name: "Bolivia"},
	{CallingCode: "592", Country: "GY", Name: "Guyana"},
	{CallingCode: "593", Country: "EC", Name: "Ecuador"},
	{CallingCode: "594", Country: "GF", Name: "French Guiana"},
	{CallingCode: "595", Country: "PY", Name: "Paraguay"},
	{CallingCode: "596", Country: "MQ", Name: "Martinique"},
	{CallingCode: "597", Country: "SR", Name: "Suriname"},
	{CallingCode: "598", Country: "UY", Name: "Uruguay"},
	{CallingCode: "599", Country: "CW", Name: "Curaçao"},
	{CallingCode: "670", Country: "TL", Name: "Timor-Leste"},
	{CallingCode: "672", Country: "NF", Name: "Norfolk Island"},
	{CallingCode: "673", Country: "BN", Name: "Brunei"},
	{CallingCode: "674", Country: "NR", Name: "Nauru"},
	{CallingCode: "675", Country: "PG", Name: "Papua New Guinea"},
	{CallingCode: "676", Country: "TO", Name: "Tonga"},
	{CallingCode: "677", Country: "SB", Name: "Solomon Islands"},
	{CallingCode: "678", Country: "VU", Name: "Vanuatu"},
	{CallingCode: "679", Country: "FJ", Name: "Fiji"},
	{CallingCode: "680", Country: "PW", Name: "Palau"},
	{CallingCode: "681", Country: "WF", Name: "Wallis and Futuna"},
	{CallingCode: "682", Country: "CK", Name: "Cook Islands"},
	{CallingCode: "683", Country: "NU", Name: "Niue"},
	{CallingCode: "685", Country: "WS", Name: "Samoa"},
	{CallingCode: "686", Country: "KI", Name: "Kiribati"},
	{CallingCode: "687", Country: "NC", Name: "New Caledonia"},
	{CallingCode: "688", Country: "TV", Name: "Tuvalu"},
	{CallingCode: "689", Country: "PF", Name: "French Polynesia"},
	{CallingCode: "690", Country: "TK", Name: "Tokelau"},
	{CallingCode: "691", Country: "FM", Name: "Micronesia"},
	{CallingCode: "692", Country: "MH", Name: "Marshall Islands"},
	{CallingCode: "850", Country: "KP", Name: "North Korea"},
	{CallingCode: "852", Country: "HK", Name: "Hong Kong"},
	{CallingCode: "853", Country: "MO", Name: "Macau"},
	{CallingCode: "855", Country: "KH", Name: "Cambodia"},
	{CallingCode: "856", Country: "LA", Name: "Laos"},
	{CallingCode: "880", Country: "BD", Name: "Bangladesh"},
	{CallingCode: "886", Country: "TW", Name: "Taiwan"},
	{CallingCode: "960", Country: "MV", Name: "Maldives"},
	{CallingCode: "961", Country: "LB", Name: "Lebanon"},
	{CallingCode: "962", Country: "JO", Name: "Jordan"},
	{CallingCode: "963", Country: "SY", Name: "Syria"},
	{CallingCode: "964", Country: "IQ", Name: "Iraq"},
	{CallingCode: "965", Country: "KW", Name: "Kuwait"},
	{CallingCode: "966", Country: "SA", Name: "Saudi Arabia"},
	{CallingCode: "967", Country: "YE", Name: "Yemen"},
	{CallingCode: "968", Country: "OM", Name: "Oman"},
	{CallingCode: "970", Country: "PS", Name: "Palestine"},
	{CallingCode: "971", Country: "AE", Name: "United Arab Emirates"},
	{CallingCode: "972", Country: "IL", Name: "Israel"},
	{CallingCode: "973", Country: "BH", Name: "Bahrain"},
	{CallingCode: "974", Country: "QA", Name: "Qatar"},
	{CallingCode: "975", Country: "BT", Name: "Bhutan"},
	{CallingCode: "976", Country: "MN", Name: "Mongolia"},
	{CallingCode: "977", Country: "NP", Name: "Nepal"},
	{CallingCode: "992", Country: "TJ", Name: "Tajikistan"},
	{CallingCode: "993", Country: "TM", Name: "Turkmenistan"},
	{CallingCode: "994", Country: "AZ", Name: "Azerbaijan"},
	{CallingCode: "995", Country: "GE", Name: "Georgia"},
	{CallingCode: "996", Country: "KG", Name: "Kyrgyzstan"},
	{CallingCode: "998", Country: "UZ", Name: "Uzbekistan"},
}

// countryNames covers territories that are reachable only through a rule.
var countryNames = map[CountryCode]string{
	"CA": "Canada",
	"PR": "Puerto Rico",
	"KZ": "Kazakhstan",
	"IM": "Isle of Man",
	"GG": "Guernsey",
	"JE": "Jersey",
	"YT": "Mayotte",
	"AX": "Åland Islands",
}
