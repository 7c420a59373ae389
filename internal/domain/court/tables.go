package court

import "strings"

// federalCourts maps federal court names as Google Scholar renders them in
// case headers to bluebook abbreviations. Container tokens map to "" so the
// qualifier that follows carries the abbreviation, and "Federal Courts" is
// the placeholder token the citation formatter inserts for claims-court and
// D.D.C. re-parses.
var federalCourts = map[string]string{
	"Supreme Court":                       "",
	"Court of Appeals":                    "",
	"Federal Courts":                      "",
	"Dist. Court":                         "",
	"Bankr. Court":                        "",
	"Federal Circuit":                     "Fed. Cir.",
	"DC Circuit":                          "D.C. Cir.",
	"D.C. Circuit":                        "D.C. Cir.",
	"1st Circuit":                         "1st Cir.",
	"2nd Circuit":                         "2d Cir.",
	"3rd Circuit":                         "3d Cir.",
	"4th Circuit":                         "4th Cir.",
	"5th Circuit":                         "5th Cir.",
	"6th Circuit":                         "6th Cir.",
	"7th Circuit":                         "7th Cir.",
	"8th Circuit":                         "8th Cir.",
	"9th Circuit":                         "9th Cir.",
	"10th Circuit":                        "10th Cir.",
	"11th Circuit":                        "11th Cir.",
	"Court of Federal Claims":             "Fed. Cl.",
	"Court of Claims":                     "Ct. Cl.",
	"Court of Customs and Patent Appeals": "C.C.P.A.",
	"Court of International Trade":        "Ct. Int'l Trade",
	"Tax Court":                           "T.C.",
}

// stateCourts maps state court names to bluebook abbreviations. A state's
// highest court maps to "" because the state abbreviation alone cites it;
// New York's trial-level Supreme Court is special-cased by the formatter.
var stateCourts = map[string]string{
	"Supreme Court":             "",
	"Supreme Judicial Court":    "",
	"Court of Appeals":          "Ct. App.",
	"Court of Appeal":           "Ct. App.",
	"Appellate Court":           "App. Ct.",
	"Appellate Division":        "App. Div.",
	"Court of Civil Appeals":    "Civ. App.",
	"Court of Criminal Appeals": "Crim. App.",
	"Superior Court":            "Super. Ct.",
	"Dist. Court":               "Dist. Ct.",
	"District Court":            "Dist. Ct.",
	"Circuit Court":             "Cir. Ct.",
	"Court of Chancery":         "Ch.",
	"Court of Claims":           "Ct. Cl.",
	"Commonwealth Court":        "Commw. Ct.",
	"Tax Court":                 "T.C.",
}

// statesTerritories maps full state and territory names to their
// traditional reporter abbreviations.
var statesTerritories = map[string]string{
	"Alabama":                  "Ala.",
	"Alaska":                   "Alaska",
	"Arizona":                  "Ariz.",
	"Arkansas":                 "Ark.",
	"California":               "Cal.",
	"Colorado":                 "Colo.",
	"Connecticut":              "Conn.",
	"Delaware":                 "Del.",
	"Florida":                  "Fla.",
	"Georgia":                  "Ga.",
	"Hawaii":                   "Haw.",
	"Idaho":                    "Idaho",
	"Illinois":                 "Ill.",
	"Indiana":                  "Ind.",
	"Iowa":                     "Iowa",
	"Kansas":                   "Kan.",
	"Kentucky":                 "Ky.",
	"Louisiana":                "La.",
	"Maine":                    "Me.",
	"Maryland":                 "Md.",
	"Massachusetts":            "Mass.",
	"Michigan":                 "Mich.",
	"Minnesota":                "Minn.",
	"Mississippi":              "Miss.",
	"Missouri":                 "Mo.",
	"Montana":                  "Mont.",
	"Nebraska":                 "Neb.",
	"Nevada":                   "Nev.",
	"New Hampshire":            "N.H.",
	"New Jersey":               "N.J.",
	"New Mexico":               "N.M.",
	"New York":                 "N.Y.",
	"North Carolina":           "N.C.",
	"North Dakota":             "N.D.",
	"Ohio":                     "Ohio",
	"Oklahoma":                 "Okla.",
	"Oregon":                   "Or.",
	"Pennsylvania":             "Pa.",
	"Rhode Island":             "R.I.",
	"South Carolina":           "S.C.",
	"South Dakota":             "S.D.",
	"Tennessee":                "Tenn.",
	"Texas":                    "Tex.",
	"Utah":                     "Utah",
	"Vermont":                  "Vt.",
	"Virginia":                 "Va.",
	"Washington":               "Wash.",
	"West Virginia":            "W. Va.",
	"Wisconsin":                "Wis.",
	"Wyoming":                  "Wyo.",
	"District of Columbia":     "D.C.",
	"Puerto Rico":              "P.R.",
	"Guam":                     "Guam",
	"Virgin Islands":           "V.I.",
	"Northern Mariana Islands": "N. Mar. I.",
	"American Samoa":           "Am. Samoa",
}

var months = map[string]string{
	"Jan": "01", "January": "01",
	"Feb": "02", "February": "02",
	"Mar": "03", "March": "03",
	"Apr": "04", "April": "04",
	"May": "05",
	"Jun": "06", "June": "06",
	"Jul": "07", "July": "07",
	"Aug": "08", "August": "08",
	"Sep": "09", "Sept": "09", "September": "09",
	"Oct": "10", "October": "10",
	"Nov": "11", "November": "11",
	"Dec": "12", "December": "12",
}

// circuits pairs each court of appeals with its ordinal name.
var circuits = []struct{ abbr, ordinal string }{
	{"1st Cir.", "First"},
	{"2d Cir.", "Second"},
	{"3d Cir.", "Third"},
	{"4th Cir.", "Fourth"},
	{"5th Cir.", "Fifth"},
	{"6th Cir.", "Sixth"},
	{"7th Cir.", "Seventh"},
	{"8th Cir.", "Eighth"},
	{"9th Cir.", "Ninth"},
	{"10th Cir.", "Tenth"},
	{"11th Cir.", "Eleventh"},
	{"D.C. Cir.", "District of Columbia"},
	{"Fed. Cir.", "Federal"},
}

// districtDivisions lists the district-court divisions of each state. A
// single "D." entry means the state is one judicial district.
var districtDivisions = map[string][]string{
	"Alabama":        {"M.D.", "N.D.", "S.D."},
	"Alaska":         {"D."},
	"Arizona":        {"D."},
	"Arkansas":       {"E.D.", "W.D."},
	"California":     {"C.D.", "E.D.", "N.D.", "S.D."},
	"Colorado":       {"D."},
	"Connecticut":    {"D."},
	"Delaware":       {"D."},
	"Florida":        {"M.D.", "N.D.", "S.D."},
	"Georgia":        {"M.D.", "N.D.", "S.D."},
	"Hawaii":         {"D."},
	"Idaho":          {"D."},
	"Illinois":       {"C.D.", "N.D.", "S.D."},
	"Indiana":        {"N.D.", "S.D."},
	"Iowa":           {"N.D.", "S.D."},
	"Kansas":         {"D."},
	"Kentucky":       {"E.D.", "W.D."},
	"Louisiana":      {"E.D.", "M.D.", "W.D."},
	"Maine":          {"D."},
	"Maryland":       {"D."},
	"Massachusetts":  {"D."},
	"Michigan":       {"E.D.", "W.D."},
	"Minnesota":      {"D."},
	"Mississippi":    {"N.D.", "S.D."},
	"Missouri":       {"E.D.", "W.D."},
	"Montana":        {"D."},
	"Nebraska":       {"D."},
	"Nevada":         {"D."},
	"New Hampshire":  {"D."},
	"New Jersey":     {"D."},
	"New Mexico":     {"D."},
	"New York":       {"E.D.", "N.D.", "S.D.", "W.D."},
	"North Carolina": {"E.D.", "M.D.", "W.D."},
	"North Dakota":   {"D."},
	"Ohio":           {"N.D.", "S.D."},
	"Oklahoma":       {"E.D.", "N.D.", "W.D."},
	"Oregon":         {"D."},
	"Pennsylvania":   {"E.D.", "M.D.", "W.D."},
	"Rhode Island":   {"D."},
	"South Carolina": {"D."},
	"South Dakota":   {"D."},
	"Tennessee":      {"E.D.", "M.D.", "W.D."},
	"Texas":          {"E.D.", "N.D.", "S.D.", "W.D."},
	"Utah":           {"D."},
	"Vermont":        {"D."},
	"Virginia":       {"E.D.", "W.D."},
	"Washington":     {"E.D.", "W.D."},
	"West Virginia":  {"N.D.", "S.D."},
	"Wisconsin":      {"E.D.", "W.D."},
	"Wyoming":        {"D."},
	"Puerto Rico":    {"D."},
}

var divisionNames = map[string]string{
	"C.D.": "Central District",
	"E.D.": "Eastern District",
	"M.D.": "Middle District",
	"N.D.": "Northern District",
	"S.D.": "Southern District",
	"W.D.": "Western District",
	"D.":   "District",
}

var courtDetails = buildCourtDetails()

// The header names a multi-district state's court as "ND California"; fold
// those spellings into the federal table so the formatter resolves them in
// one lookup.
func init() {
	for state, divisions := range districtDivisions {
		abbr := statesTerritories[state]
		for _, div := range divisions {
			if div == "D." {
				continue
			}
			header := strings.ReplaceAll(div, ".", "") + " " + state
			federalCourts[header] = districtIdentity(div, abbr)
		}
	}
}

// slug turns a court identity into its lowercase dashed code: "Fed. Cir."
// becomes "fed-cir".
func slug(identity string) string {
	s := strings.ToLower(identity)
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, "'", "")
	s = strings.Join(strings.Fields(s), "-")
	return s
}

// districtIdentity joins a division prefix with a state abbreviation the
// way the formatter does: a space separates them only when the abbreviation
// contains a lowercase letter ("N.D. Cal." but "S.D.N.Y.").
func districtIdentity(division, abbr string) string {
	if strings.IndexFunc(abbr, func(r rune) bool { return r >= 'a' && r <= 'z' }) >= 0 {
		return division + " " + abbr
	}
	return division + abbr
}

func buildCourtDetails() map[string]Detail {
	d := map[string]Detail{
		"Supreme Court": {
			FullName:     "Supreme Court of the United States",
			ShortName:    "Supreme Court",
			CourtCode:    SupremeCourtCode,
			Jurisdiction: "F",
		},
		"Fed. Cl.": {
			FullName:     "United States Court of Federal Claims",
			ShortName:    "Fed. Cl.",
			CourtCode:    "fed-cl",
			Jurisdiction: "F",
		},
		"Ct. Cl.": {
			FullName:     "United States Court of Claims",
			ShortName:    "Ct. Cl.",
			CourtCode:    "ct-cl",
			Jurisdiction: "F",
		},
		"C.C.P.A.": {
			FullName:     "Court of Customs and Patent Appeals",
			ShortName:    "C.C.P.A.",
			CourtCode:    "ccpa",
			Jurisdiction: "F",
		},
		"Ct. Int'l Trade": {
			FullName:     "United States Court of International Trade",
			ShortName:    "Ct. Int'l Trade",
			CourtCode:    "ct-intl-trade",
			Jurisdiction: "F",
		},
		"D.D.C.": {
			FullName:     "United States District Court for the District of Columbia",
			ShortName:    "D.D.C.",
			CourtCode:    "ddc",
			Jurisdiction: "F",
		},
	}

	for _, c := range circuits {
		d[c.abbr] = Detail{
			FullName:     "United States Court of Appeals for the " + c.ordinal + " Circuit",
			ShortName:    c.abbr,
			CourtCode:    slug(c.abbr),
			Jurisdiction: "F",
		}
	}

	for state, divisions := range districtDivisions {
		abbr := statesTerritories[state]
		for _, div := range divisions {
			identity := districtIdentity(div, abbr)
			d[identity] = Detail{
				FullName:     "United States District Court for the " + divisionNames[div] + " of " + state,
				ShortName:    identity,
				CourtCode:    slug(identity),
				Jurisdiction: "F",
			}
		}
	}

	for state, abbr := range statesTerritories {
		if _, ok := d[abbr]; !ok {
			d[abbr] = Detail{
				FullName:     state + " Supreme Court",
				ShortName:    abbr,
				CourtCode:    slug(abbr + " sup"),
				Jurisdiction: abbr,
			}
		}
		appID := abbr + " Ct. App."
		d[appID] = Detail{
			FullName:     state + " Court of Appeals",
			ShortName:    appID,
			CourtCode:    slug(abbr + " app"),
			Jurisdiction: abbr,
		}
		superID := abbr + " Super. Ct."
		d[superID] = Detail{
			FullName:     state + " Superior Court",
			ShortName:    superID,
			CourtCode:    slug(abbr + " super"),
			Jurisdiction: abbr,
		}
	}

	d["N.Y. Sup. Ct."] = Detail{
		FullName:     "New York Supreme Court",
		ShortName:    "N.Y. Sup. Ct.",
		CourtCode:    "ny-sup-ct",
		Jurisdiction: "N.Y.",
	}
	d["Pa. Commw. Ct."] = Detail{
		FullName:     "Commonwealth Court of Pennsylvania",
		ShortName:    "Pa. Commw. Ct.",
		CourtCode:    "pa-commw",
		Jurisdiction: "Pa.",
	}
	return d
}
