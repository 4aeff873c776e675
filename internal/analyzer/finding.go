package analyzer

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// RuleName identifies one of the fixed validation rules.
type RuleName string

const (
	RuleTotalsBalance   RuleName = "TOTALS_BALANCE"
	RuleLineMath        RuleName = "LINE_MATH"
	RuleDateISO         RuleName = "DATE_ISO"
	RuleCurrencyAllowed RuleName = "CURRENCY_ALLOWED"
	RuleTRNPresent      RuleName = "TRN_PRESENT"
)

// Detail is the rule-specific diagnostic attached to a failing finding.
type Detail interface {
	detailFor() RuleName
}

// LineMathDetail describes the first line item whose qty * unit_price does not match line_total.
// ExampleLine is the 1-based row index. Expected is nil when qty or unit_price is not numeric.
type LineMathDetail struct {
	ExampleLine int      `json:"exampleLine"`
	Expected    *float64 `json:"expected"`
	Got         any      `json:"got"`
}

func (LineMathDetail) detailFor() RuleName { return RuleLineMath }

// CurrencyDetail carries the first currency value outside the allowed set.
// Value is nil when the offending row has no currency at all.
type CurrencyDetail struct {
	Value any `json:"value,omitempty"`
}

func (CurrencyDetail) detailFor() RuleName { return RuleCurrencyAllowed }

// RuleFinding is the single pass/fail result of a rule over the whole dataset.
type RuleFinding struct {
	Rule   RuleName
	OK     bool
	Detail Detail
}

type findingBase struct {
	Rule RuleName `json:"rule"`
	OK   bool     `json:"ok"`
}

// MarshalJSON flattens the detail fields next to rule and ok.
func (f RuleFinding) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(findingBase{Rule: f.Rule, OK: f.OK})
	if err != nil {
		return nil, err
	}
	if f.Detail == nil {
		return base, nil
	}
	extra, err := json.Marshal(f.Detail)
	if err != nil {
		return nil, fmt.Errorf("marshaling %s detail: %w", f.Rule, err)
	}
	if bytes.Equal(extra, []byte("{}")) {
		return base, nil
	}
	out := make([]byte, 0, len(base)+len(extra))
	out = append(out, base[:len(base)-1]...)
	out = append(out, ',')
	out = append(out, extra[1:]...)
	return out, nil
}

// UnmarshalJSON restores the detail variant from the rule name.
func (f *RuleFinding) UnmarshalJSON(data []byte) error {
	var base findingBase
	if err := json.Unmarshal(data, &base); err != nil {
		return err
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}

	f.Rule, f.OK, f.Detail = base.Rule, base.OK, nil
	switch base.Rule {
	case RuleLineMath:
		if _, ok := keys["exampleLine"]; ok {
			var d LineMathDetail
			if err := json.Unmarshal(data, &d); err != nil {
				return fmt.Errorf("decoding %s detail: %w", base.Rule, err)
			}
			f.Detail = d
		}
	case RuleCurrencyAllowed:
		if _, ok := keys["value"]; ok {
			var d CurrencyDetail
			if err := json.Unmarshal(data, &d); err != nil {
				return fmt.Errorf("decoding %s detail: %w", base.Rule, err)
			}
			f.Detail = d
		}
	}
	return nil
}
