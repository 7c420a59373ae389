package parser

import "sort"

// reporterInfo describes one reporter series in its standard form.
type reporterInfo struct {
	Name     string
	CiteType string
	Edition  string
}

// reporterVariations maps every spelling of a reporter abbreviation seen in
// the corpus to its standard form. Standard forms map to themselves so a
// clean citation resolves in one pass.
var reporterVariations = map[string]string{
	"U.S.":           "U.S.",
	"U. S.":          "U.S.",
	"S. Ct.":         "S. Ct.",
	"S.Ct.":          "S. Ct.",
	"L. Ed. 2d":      "L. Ed. 2d",
	"L.Ed.2d":        "L. Ed. 2d",
	"L. Ed.2d":       "L. Ed. 2d",
	"L. Ed.":         "L. Ed.",
	"L.Ed.":          "L. Ed.",
	"F.4th":          "F.4th",
	"F. 4th":         "F.4th",
	"F.3d":           "F.3d",
	"F. 3d":          "F.3d",
	"F.2d":           "F.2d",
	"F. 2d":          "F.2d",
	"F.":             "F.",
	"F. Supp. 3d":    "F. Supp. 3d",
	"F.Supp.3d":      "F. Supp. 3d",
	"F. Supp. 2d":    "F. Supp. 2d",
	"F.Supp.2d":      "F. Supp. 2d",
	"F. Supp.2d":     "F. Supp. 2d",
	"F. Supp.":       "F. Supp.",
	"F.Supp.":        "F. Supp.",
	"F. App'x":       "F. App'x",
	"Fed. Appx.":     "F. App'x",
	"Fed.Appx.":      "F. App'x",
	"Fed. Cl.":       "Fed. Cl.",
	"Ct. Cl.":        "Ct. Cl.",
	"B.R.":           "B.R.",
	"U.S.P.Q.":       "U.S.P.Q.",
	"U.S.P.Q.2d":     "U.S.P.Q.2d",
	"USPQ2d":         "U.S.P.Q.2d",
	"USPQ":           "U.S.P.Q.",
	"A.3d":           "A.3d",
	"A.2d":           "A.2d",
	"A.":             "A.",
	"P.3d":           "P.3d",
	"P.2d":           "P.2d",
	"P. C.":          "P. C.",
	"P.":             "P.",
	"N.E.3d":         "N.E.3d",
	"N.E.2d":         "N.E.2d",
	"N.E.":           "N.E.",
	"N.W.2d":         "N.W.2d",
	"N.W.":           "N.W.",
	"S.E.2d":         "S.E.2d",
	"S.E.":           "S.E.",
	"S.W.3d":         "S.W.3d",
	"S.W.2d":         "S.W.2d",
	"S.W.":           "S.W.",
	"So. 3d":         "So. 3d",
	"So.3d":          "So. 3d",
	"So. 2d":         "So. 2d",
	"So.2d":          "So. 2d",
	"So.":            "So.",
	"Cal. Rptr. 3d":  "Cal. Rptr. 3d",
	"Cal. Rptr. 2d":  "Cal. Rptr. 2d",
	"Cal. Rptr.":     "Cal. Rptr.",
	"Cal.Rptr.3d":    "Cal. Rptr. 3d",
	"Cal.Rptr.2d":    "Cal. Rptr. 2d",
	"Cal.Rptr.":      "Cal. Rptr.",
	"N.Y.S.3d":       "N.Y.S.3d",
	"N.Y.S.2d":       "N.Y.S.2d",
	"N.Y.S.":         "N.Y.S.",
	"A.L.R.":         "A.L.R.",
	"WL":             "WL",
}

// reporterCatalog carries the series metadata attached to tokenized
// citations.
var reporterCatalog = map[string]reporterInfo{
	"U.S.":          {Name: "United States Supreme Court Reports", CiteType: "federal", Edition: "U.S."},
	"S. Ct.":        {Name: "West's Supreme Court Reporter", CiteType: "federal", Edition: "S. Ct."},
	"L. Ed.":        {Name: "Lawyers' Edition", CiteType: "federal", Edition: "L. Ed."},
	"L. Ed. 2d":     {Name: "Lawyers' Edition", CiteType: "federal", Edition: "L. Ed. 2d"},
	"F.":            {Name: "Federal Reporter", CiteType: "federal", Edition: "F."},
	"F.2d":          {Name: "Federal Reporter", CiteType: "federal", Edition: "F.2d"},
	"F.3d":          {Name: "Federal Reporter", CiteType: "federal", Edition: "F.3d"},
	"F.4th":         {Name: "Federal Reporter", CiteType: "federal", Edition: "F.4th"},
	"F. Supp.":      {Name: "Federal Supplement", CiteType: "federal", Edition: "F. Supp."},
	"F. Supp. 2d":   {Name: "Federal Supplement", CiteType: "federal", Edition: "F. Supp. 2d"},
	"F. Supp. 3d":   {Name: "Federal Supplement", CiteType: "federal", Edition: "F. Supp. 3d"},
	"F. App'x":      {Name: "Federal Appendix", CiteType: "federal", Edition: "F. App'x"},
	"Fed. Cl.":      {Name: "Federal Claims Reporter", CiteType: "federal", Edition: "Fed. Cl."},
	"Ct. Cl.":       {Name: "Court of Claims Reports", CiteType: "federal", Edition: "Ct. Cl."},
	"B.R.":          {Name: "Bankruptcy Reporter", CiteType: "federal", Edition: "B.R."},
	"U.S.P.Q.":      {Name: "United States Patents Quarterly", CiteType: "specialty", Edition: "U.S.P.Q."},
	"U.S.P.Q.2d":    {Name: "United States Patents Quarterly", CiteType: "specialty", Edition: "U.S.P.Q.2d"},
	"A.":            {Name: "Atlantic Reporter", CiteType: "state_regional", Edition: "A."},
	"A.2d":          {Name: "Atlantic Reporter", CiteType: "state_regional", Edition: "A.2d"},
	"A.3d":          {Name: "Atlantic Reporter", CiteType: "state_regional", Edition: "A.3d"},
	"P.":            {Name: "Pacific Reporter", CiteType: "state_regional", Edition: "P."},
	"P.2d":          {Name: "Pacific Reporter", CiteType: "state_regional", Edition: "P.2d"},
	"P.3d":          {Name: "Pacific Reporter", CiteType: "state_regional", Edition: "P.3d"},
	"N.E.":          {Name: "North Eastern Reporter", CiteType: "state_regional", Edition: "N.E."},
	"N.E.2d":        {Name: "North Eastern Reporter", CiteType: "state_regional", Edition: "N.E.2d"},
	"N.E.3d":        {Name: "North Eastern Reporter", CiteType: "state_regional", Edition: "N.E.3d"},
	"N.W.":          {Name: "North Western Reporter", CiteType: "state_regional", Edition: "N.W."},
	"N.W.2d":        {Name: "North Western Reporter", CiteType: "state_regional", Edition: "N.W.2d"},
	"S.E.":          {Name: "South Eastern Reporter", CiteType: "state_regional", Edition: "S.E."},
	"S.E.2d":        {Name: "South Eastern Reporter", CiteType: "state_regional", Edition: "S.E.2d"},
	"S.W.":          {Name: "South Western Reporter", CiteType: "state_regional", Edition: "S.W."},
	"S.W.2d":        {Name: "South Western Reporter", CiteType: "state_regional", Edition: "S.W.2d"},
	"S.W.3d":        {Name: "South Western Reporter", CiteType: "state_regional", Edition: "S.W.3d"},
	"So.":           {Name: "Southern Reporter", CiteType: "state_regional", Edition: "So."},
	"So. 2d":        {Name: "Southern Reporter", CiteType: "state_regional", Edition: "So. 2d"},
	"So. 3d":        {Name: "Southern Reporter", CiteType: "state_regional", Edition: "So. 3d"},
	"Cal. Rptr.":    {Name: "California Reporter", CiteType: "state", Edition: "Cal. Rptr."},
	"Cal. Rptr. 2d": {Name: "California Reporter", CiteType: "state", Edition: "Cal. Rptr. 2d"},
	"Cal. Rptr. 3d": {Name: "California Reporter", CiteType: "state", Edition: "Cal. Rptr. 3d"},
	"N.Y.S.":        {Name: "New York Supplement", CiteType: "state", Edition: "N.Y.S."},
	"N.Y.S.2d":      {Name: "New York Supplement", CiteType: "state", Edition: "N.Y.S.2d"},
	"N.Y.S.3d":      {Name: "New York Supplement", CiteType: "state", Edition: "N.Y.S.3d"},
	"A.L.R.":        {Name: "American Law Reports", CiteType: "specialty", Edition: "A.L.R."},
	"WL":            {Name: "Westlaw", CiteType: "electronic", Edition: "WL"},
}

// reporterScanOrder lists the variations longest first so "F. Supp. 2d"
// wins over "F." during the substring scan.
var reporterScanOrder = buildReporterScanOrder()

func buildReporterScanOrder() []string {
	keys := make([]string, 0, len(reporterVariations))
	for k := range reporterVariations {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}
