package analyzer

import (
	"math"
	"regexp"

	"readiness/internal/schema"
)

const (
	// amountTolerance is the absolute difference allowed between computed and stated amounts.
	amountTolerance = 0.01
	// floatSlack absorbs binary representation error so that a difference of exactly one cent passes.
	floatSlack = 1e-9
)

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ruleCheck evaluates one rule across all rows and always yields exactly one finding.
type ruleCheck struct {
	name  RuleName
	check func(*schema.Schema, []NormalizedRow) RuleFinding
}

// ruleChecks returns the rule battery in evaluation order.
func ruleChecks() []ruleCheck {
	return []ruleCheck{
		{name: RuleTotalsBalance, check: checkTotalsBalance},
		{name: RuleLineMath, check: checkLineMath},
		{name: RuleDateISO, check: checkDateISO},
		{name: RuleCurrencyAllowed, check: checkCurrencyAllowed},
		{name: RuleTRNPresent, check: checkTRNPresent},
	}
}

// RuleNames lists the rules in evaluation order.
func RuleNames() []RuleName {
	checks := ruleChecks()
	out := make([]RuleName, len(checks))
	for i, c := range checks {
		out[i] = c.name
	}
	return out
}

// RuleCount is the number of rules in the battery; the rules score divides by it.
const RuleCount = 5

// RunRuleChecks runs every rule over the normalized rows. Rules are independent; a failing rule never stops the
// others. A value a rule needs but the row lacks is a violation.
func RunRuleChecks(s *schema.Schema, rows []NormalizedRow) []RuleFinding {
	checks := ruleChecks()
	findings := make([]RuleFinding, 0, len(checks))
	for _, c := range checks {
		findings = append(findings, c.check(s, rows))
	}
	return findings
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) <= amountTolerance+floatSlack
}

func numberAt(row NormalizedRow, path string) (float64, bool) {
	v, ok := row.Value(path)
	if !ok {
		return 0, false
	}
	return toNumber(v)
}

func checkTotalsBalance(_ *schema.Schema, rows []NormalizedRow) RuleFinding {
	for _, row := range rows {
		excl, ok1 := numberAt(row, schema.PathTotalExclVAT)
		vat, ok2 := numberAt(row, schema.PathVATAmount)
		incl, ok3 := numberAt(row, schema.PathTotalInclVAT)
		if !ok1 || !ok2 || !ok3 || !approxEqual(excl+vat, incl) {
			return RuleFinding{Rule: RuleTotalsBalance, OK: false}
		}
	}
	return RuleFinding{Rule: RuleTotalsBalance, OK: true}
}

func checkLineMath(_ *schema.Schema, rows []NormalizedRow) RuleFinding {
	for i, row := range rows {
		for _, line := range row.Lines {
			qty, okQty := toNumber(line["qty"])
			price, okPrice := toNumber(line["unit_price"])
			total, okTotal := toNumber(line["line_total"])
			if okQty && okPrice && okTotal && approxEqual(qty*price, total) {
				continue
			}
			detail := LineMathDetail{ExampleLine: i + 1, Got: line["line_total"]}
			if okQty && okPrice {
				expected := qty * price
				detail.Expected = &expected
			}
			return RuleFinding{Rule: RuleLineMath, OK: false, Detail: detail}
		}
	}
	return RuleFinding{Rule: RuleLineMath, OK: true}
}

func checkDateISO(_ *schema.Schema, rows []NormalizedRow) RuleFinding {
	for _, row := range rows {
		v, _ := row.Value(schema.PathIssueDate)
		s, ok := v.(string)
		if !ok || !isoDatePattern.MatchString(s) {
			return RuleFinding{Rule: RuleDateISO, OK: false}
		}
	}
	return RuleFinding{Rule: RuleDateISO, OK: true}
}

// checkCurrencyAllowed requires each row's currency to be in the schema's allowed set. A schema that declares no
// set for the currency field only requires the value to be present.
func checkCurrencyAllowed(s *schema.Schema, rows []NormalizedRow) RuleFinding {
	restricted := s.HasEnum(schema.PathCurrency)
	for _, row := range rows {
		v, _ := row.Value(schema.PathCurrency)
		var allowed bool
		if c, ok := v.(string); ok {
			allowed = !restricted && c != "" || s.Allows(schema.PathCurrency, c)
		}
		if !allowed {
			return RuleFinding{Rule: RuleCurrencyAllowed, OK: false, Detail: CurrencyDetail{Value: v}}
		}
	}
	return RuleFinding{Rule: RuleCurrencyAllowed, OK: true}
}

func checkTRNPresent(_ *schema.Schema, rows []NormalizedRow) RuleFinding {
	for _, row := range rows {
		buyer, _ := row.Value(schema.PathBuyerTRN)
		seller, _ := row.Value(schema.PathSellerTRN)
		if !IsPresent(buyer) || !IsPresent(seller) {
			return RuleFinding{Rule: RuleTRNPresent, OK: false}
		}
	}
	return RuleFinding{Rule: RuleTRNPresent, OK: true}
}
