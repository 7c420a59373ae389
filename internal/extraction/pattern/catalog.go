package pattern

import "regexp"

// The catalog below is the complete grammar of the source format, grouped by
// concern.  Group indices are part of each rule's contract and are relied on
// by the extractors; change them only together.
//
// The engine is RE2, so the historical lookaround idioms are expressed as
// consumed context groups instead; callers restore or skip the context group
// as noted per rule.

// Case identity.
var (
	// CaseID captures the numeric document id from a scholar_case link.
	CaseID = New(`/scholar_case\?(?:.*?)=(\d+)`, `$1`)

	// RelatedDocketParam captures the related-docket query parameter.
	RelatedDocketParam = New(`scidkt=(.*?)&`, ``)

	// JustDigits matches a string that is nothing but digits.
	JustDigits = New(`^\d+$`, ``)
)

// Docket numbers.
var (
	// DocketNumber finds a "No./Nos. ..." run at the start of the header or
	// after a comma.  Group 1 is the full run including the prefix, group 2
	// the docket body after it.
	DocketNumber = New(`(?:^|,)((?: +)?Nos?[., ]+((?:[\w:\-. ]|\([A-Za-z/]+\))+))`, ``)

	// DocketComposite finds district-style composite dockets such as
	// "2:10-cv-01385 MJP".  Group 1 is the full run, group 2 the docket
	// body.
	DocketComposite = New(`(?:^|,|Nos?\.)((?: +)(\d+[:-][A-Z\d+\-/ ]+))`, ``)

	// DocketAppeals recognizes the federal-appeals docket shape
	// ("2012-1338", ", -1339").
	DocketAppeals = New(`(?:\d{2,4}|, (?:and)?(?: +)?)-\d{1,5}`, ``)

	// DocketSupreme recognizes the Supreme Court docket shape.
	DocketSupreme = New(`\d+(?:-\d+)?`, ``)

	// DocketPrefix matches the "No."/"C.A. No."/"Civil Action No." prefix
	// clutter in front of a docket number.
	DocketPrefix = New(`(?i)(?:^|,)(?: +)?(?:(?:C\.?A|D(?:[oc]+)?ke?ts?|MDL| +|Case|Crim|Civ)+(?:il|inal)?(?:(?:Action|CV|A|[. ])+)?)?((?:C\.A|Nos?)\.:?)(?: )?`, ``)

	// DocketParen removes a parenthesized annotation trailing a docket run.
	DocketParen = New(`\([\w ]+\)`, ``)

	// AndToComma turns the "and" joining two dockets into a list comma.
	AndToComma = New(`(?i),? +and +`, `,`)
)

// Patent and application numbers.
//
// patentNumberExpr matches a 3-digit-grouped number with an optional category
// letter prefix (reissue "re", plant "pp", design "d", and the historical
// "ai"/"x"/"h"/"t" series) and an optional "ai" continuation suffix.
const patentNumberExpr = `(?:(?:re|pp|d|ai|x|h|t)?(?:[ -]+)?\d{1,2} ?\-?[,./;] ?\-?)?(?:(?:re|pp|d|ai|x|h|t)(?:[ -]+)?\d{2,3}|\d{3}) ?\-?[,./;] ?\-?\d{3}(?: ?ai)?\b`

var (
	PatentNumber = New(patentNumberExpr, ``)

	// PatentNumberCited requires a citing token ("U.S. Patent No.", "Pat.",
	// ...) in front of the number.  Group 1 is the number itself.
	PatentNumberCited = New(`(?i)(?:us|no[s.]+|number(?:s|ed)?|pat(?:\.|ents?)|and|then?|[,;:`+"`"+`'’]) ?(`+patentNumberExpr+`)`, ``)

	// PatentNumberLoose tolerates a mangled "United States Patent" prefix.
	PatentNumberLoose = New(`(?i)[uspniteda. ]+`+patentNumberExpr, ``)

	// PatentNumberStrip reduces a matched number to bare digits; a leftover
	// "US" or a trailing kind code is an artifact, not a number.
	PatentNumberStrip = New(`\W|US|(?: +)?[A-Z]\d$`, ``)

	// PatentReference captures the 3-4 digit short reference in "the '123
	// patent" (group 1) or "Patent '123" (group 2) phrasing.
	PatentReference = New(`(?:the|["`+"`"+`'#’]+) ?(\d{3,4}) ?(?:[Aa]pplication|[Pp]atent)\b|(?:[Aa]pplication|[Pp]atent)\b +["`+"`"+`'#’]+(\d{3,4})`, ``)

	// PatentCollectiveRef matches the '(collectively, "the ... patents")'
	// marker used when an opinion never references patents individually.
	PatentCollectiveRef = New(`(?i)(\((?:collectively,?)?(?:\s+)?(?:the\s+)?"(?:[\w' ]+)?patent(s)?"\))`, ``)
)

// Claim numbers.  Two disjoint grammars: anchored to a quoted reference
// number vs. mentioned at large.
var (
	// ClaimsAnchored captures "claims 1-5 ... of the '123 patent".
	// Group 1 is the claim list, group 2 the filler between list and
	// reference, group 3 the reference digits.  The caller must reject
	// matches whose filler contains another "claim" token or a citation
	// sentinel; the historical grammar expressed that as lookahead.
	ClaimsAnchored = New(`(?i)claims?([\d\-,:"”'’ and]+)((?:[\w( ])+)(?:[("“ ]+)?(?: ?the ?)?(?:the|["`+"`"+`'#’]+) ?(\d+)(?:\s+patent)?`, ``)

	// ClaimsAtLarge captures a claim list with no adjacent patent marker.
	// Group 1 is the list, including "and"/"or"/"through" connectives.
	ClaimsAtLarge = New(`[cC]laims? (\d[\d,\-: ]*(?:(?:[, ]+)?(?:and|or|through) [\d\- ]+)*)`, ``)

	// ClaimDependency captures "depends on claim(s) N (to M)" phrasing in
	// claim text, or a collective "any preceding claim" reference
	// (group 4/5).
	ClaimDependency = New(`\s+claims?(?:\s+)?(\d+)(?:(?:\s+)?(or|\-|to|through|and)?(?:[claim\s]+)?(\d+))?|\s+(former|prior|above|foregoing|previous|precee?ding)(?:\s+)?claim(s)?`, ``)
)

// Judge names.
var (
	// JudgeHonorific strips honorific/role prefixes and suffixes from a
	// judges paragraph.
	JudgeHonorific = New(`^(m[rs]s?\.? )?C[Hh][Ii][Ee][Ff] J[Uu][Dd][Gg][Ee][Ss]? |^(m[rs]s?\.? )?(?:C[Hh][Ii][Ee][Ff] )?J[Uu][Ss][Tt][Ii][Cc][Ee][Ss]? |^P[rR][Ee][Ss][Ee][Nn][Tt]: |^B[eE][fF][oO][rR][Ee]: | J[Uu][Dd][Gg][Ee][Ss]?[:.]?$|, [UJSC. ]+:?$|, (?:[USD. ]+)?[J. ]+:?$|, J[Uu][Ss][Tt][Ii][Cc][Ee][Ss]?\.?$`, ``)

	// JudgeClean1 removes opinion-attribution boilerplate.
	JudgeClean1 = New(`, joined$| ?—$|^Opinion of the Court by |, United States District Court| ?Pending before the Court are:?| ?Opinion for the court filed by[\w'., ]+| delivered the opinion of the Court\.|^Appeal from `, ``)

	// JudgeClean2 removes residual honorifics and post-nominal letters.
	JudgeClean2 = New(`(?i)^(?:the )?hon\. |^(?:the )?honorable |^(?:\d+\*\d+)?(?: +)?before:? |^present:? |^m[rs]s?\.? |,? ?(?:u\.?s\.?)?d?\.?j\.\.?$|, j\.s\.c\.$`, ``)

	// JudgeClean3 removes court/role words so only the proper name remains.
	JudgeClean3 = New(`(?i)senior|chief|u\.?s\.?|united states|circuit|district|magistrate|court|judges?`, ``)

	// JudgeAnd turns the "and" between the last two judge names into the
	// list comma the splitter expects.
	JudgeAnd = New(`(?i) and `, `, `)

	// RomanNumeral matches a whole token that parses as a roman numeral.
	RomanNumeral = New(`^[MDCLXVI](?:M|D|C{0,4}|L|X{0,4}|V|I{0,4})$`, ``)

	// NameSuffix matches a generational suffix token ("Jr.", "Sr.").
	NameSuffix = New(`^[JS][Rr]\.$`, ``)
)

// Dates.
var (
	// LongDate captures a spelled-out month date ("March 21, 2011").
	LongDate = New(`((?:January|February|March|April|May|June|July|August|September|October|November|December)(?:[0-9, ]+))`, ``)

	// ShortMonthDate captures an abbreviated-month date as found inside
	// citation parentheticals.  Groups: 2 month, 3 day, 4 year.
	ShortMonthDate = New(`((?:(Jan|Feb|Mar|Apr|May|June?|July?|Aug|Sept?|Oct|Nov|Dec)\.?(?: +)?(?:([0-9]{1,2})\b,?)?(?: +)?)?(\d{4}))`, ``)
)

// Citations.
var (
	// LongBluebook matches text that already looks like a complete bluebook
	// citation ("X v. Y, ... (Fed. Cir. 2011)").
	LongBluebook = New(`(?i)(?:^in re:?| +v\.? +).*(?:en banc|ed\.|cir\.|\d{4})\)$`, ``)

	// ExtrasCitation trims pin cites, parallel-citation tails, and editorial
	// quotes off a citation, then normalizes reporter spellings.  The first
	// rule appears twice: the engine does not rescan replaced text, and
	// adjacent pin-cite runs need a second pass.
	ExtrasCitation = Rules{
		New(`,(?:(?:[\d& ,\-\*]+)|(?:[nat&\- \*\d]+(?:[\. ]+(?:(?:[\.\- ]+)?\d+)? ?)?))( \(|,)`, `$1`),
		New(`,(?:(?:[\d& ,\-\*]+)|(?:[nat&\- \*\d]+(?:[\. ]+(?:(?:[\.\- ]+)?\d+)? ?)?))( \(|,)`, `$1`),
		New(`((?:^in re:?|(?:.)* v\.? +).*(?:\(en banc|ed\.|Cir\.|\d{4})\))(?:(?:(?: +)?\(.*?\))+)?$`, `$1`),
		New(`^(?:[\w'\-\.]+)?"(?: +)?| +\(".*?"\)|\b at ?\*?(?: +)?(?:\d+(?: ?\- ?\d+)?)+`, ``),
		New(`Fed\. ?Appx\.`, `F. App'x`),
		New(`F\. ?Supp\. ?(\d+)d`, `F. Supp. $1d`),
		New(`L\. ?Ed\. ?(\d+)d`, `L. Ed. $1d`),
		New(`S\.Ct\.`, `S. Ct.`),
	}

	// FederalCourt matches the federal citation tail.  Groups: 1 whole
	// tail, 2 delimiter, 3 court token, 4 year.
	FederalCourt = New(`( ?([,-]) ([\w:. ']+) (\d{4}))$`, ``)

	// FederalCourtTwoLevel re-parses a federal tail after the first-level
	// court was folded into a parenthetical, exposing the court-type token.
	// Groups: 1 whole tail, 2 delimiter, 3 court type, 4 parenthetical body.
	FederalCourtTwoLevel = New(`( ?([-,]) ([\w:. ']+) \(([\w:. ']+)\))$`, ``)

	// StateCourt matches the state citation tail.  Groups: 1 whole tail,
	// 2 delimiter, 3 state, 4 court name, 5 year.
	StateCourt = New(`( ?([-,]) ([\w. ]+): (.*?) (\d{4}))$`, ``)

	// VersusParts splits a case name into plaintiff and defendant.
	VersusParts = New(`(?i)^(.*?) v\.? (.*)`, ``)

	// ParenNumberOnly matches a parenthetical that holds nothing but a
	// number, which is a page artifact rather than a court location.
	ParenNumberOnly = New(`^\((?: +)?\d+(?: +)?\)$`, ``)

	// EmptyCiteRun collapses the dash/underscore runs left behind after an
	// unprinted reporter citation is removed.
	EmptyCiteRun = New(`[\-—–_ ]{2,}[, ]+`, ` `)

	// CasenameBeforeBlank captures everything before the first blanked-out
	// reporter citation.
	CasenameBeforeBlank = New(`^(.*?)XXXX+.*`, `$1`)

	// ApproxCourtLocation captures the trailing court parenthetical of a
	// complete citation.
	ApproxCourtLocation = New(`(\([\w\.,' ]+\))(?: +)?(?:\(en banc\))?$`, ``)

	// CourtClean normalizes court-name spellings inside a citation tail.
	CourtClean = Rules{
		New(`Cir\.(\d+)`, `Cir. $1`),
		New(`Fed\.Cir\.`, `Fed. Cir.`),
		New(`CCPA`, `C.C.P.A.`),
		New(`PTAB`, `P.T.A.B.`),
		New(`Dept`, `Dep't`),
		New(`([\(| ])(Fed|Cir)([^.\w])`, `$1$2.$3`),
		New(`([^ (])(\d{4}\))(?: +)?(?:\(en banc\))?$`, `$1 $2`),
		New(`(\.)([A-Z][a-z']+\.)`, `$1 $2`),
	}

	// BareYear matches a header ending in ", YYYY" or "- YYYY" with no
	// court token, the Supreme Court shape.  Groups: 1 delimiter, 2 year.
	// Substituting folds the year into a parenthetical.
	BareYear = New(` ?([-,]) (\d{4})$`, ` ($2)`)

	// Boundary trims citation-boundary punctuation and a leading article.
	Boundary = New(`^(?:[Tt]he |[.,;:"'\[\(\- ])+|[;:"'\)\]\- ]+$|'s$`, ``)
)

// Labeled-text markers.
var (
	// EndSentence matches a paragraph that ends in sentence-final
	// punctuation, a disposition keyword, or a footnote marker.
	EndSentence = New(`(?:AFFIRMED|ORDERED|REMANDED|DENIED|REVERSED|GRANTED|[pP][aA][rR][tT]|@@@@\[[\d\*]+\]|[.!?])(?:["'”’]+)?$`, ``)

	// PageMarker removes the in-text page-number markers.
	PageMarker = New(`(?: +)?\+page\[\d+\]\+ +`, ` `)

	// FootnoteTag removes footnote markers from text.
	FootnoteTag = New(` ?@@@@\[[\d\*]+\] ?`, ` `)

	// PageBreakNoise removes the "123*124" page-break residue from flat
	// opinion text.
	PageBreakNoise = New(` \d+\*\d+ `, ` `)

	// DissentConcur finds a separate-opinion introduction between paragraph
	// markers.  Group 1 is the span starting at the judge's name; group 2
	// the concurring/dissenting tail.  Span offsets use group 1.
	DissentConcur = New(`\$([^$][^$]+((?:[Cc]oncurring|[Dd]issenting)[a-z.:;,\- ]+))`, ``)
)

// ReporterEmpty builds the rule that detects a citation whose reporter pages
// were never printed ("___ U.S. ___, ___"), for the given reporter
// abbreviation.
func ReporterEmpty(abbr string) Rule {
	return New(`(?:(?:[\-—–_\d ]+))(?:`+quote(abbr)+`)(?:(?: +)(?:[\-—–_]+)[, ]+)+`, ``)
}

// Reporter builds the volume/reporter/page tokenizer rule for the given
// reporter abbreviation.  Groups: 2 volume, 4 pages, 5-6 pin-cite tails.
func Reporter(abbr string) Rule {
	return New(`((\d+)(?: +)?(`+quote(abbr)+`)(?: +)?([\d\-—–_ ]+)([at,\.\d\-—–_\*¶ ]+)?([n\.\d\-—–_\*¶ ]+)?)`, ``)
}

func quote(s string) string {
	return regexp.QuoteMeta(s)
}
