package retro

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/warp/retro-payroll/generic"
)

// Calculate segments the record's range and allocates the salary and
// overtime differences across the resulting periods. A range that covers no
// closed period yields an empty Result.
func Calculate(in Input, cycle generic.Cycle) Result {
	result := Result{Details: []DetailLine{}, Summaries: []SummaryRow{}}

	periods := generic.Segment(in.StartDate, in.EndDate, cycle)
	if len(periods) == 0 {
		return result
	}

	delta := in.NewSalary.Sub(in.PreviousSalary)
	salary := generic.RoundCurrency(delta.Mul(cycle.Factor()))
	overtime := overtimeAmounts(in, delta)

	for i, p := range periods {
		row := SummaryRow{
			ID:          in.ID,
			Name:        in.Name,
			SecondaryID: in.SecondaryID,
			Period:      p.Start.Format(),
		}

		if salary > 0 {
			result.Details = append(result.Details, DetailLine{
				ID:      in.ID,
				Name:    in.Name,
				Concept: SalaryConcept,
				Detail:  p.Start.Format(),
				Amount:  salary,
			})
			row.Salary = salary
		}

		if i == 0 || !OvertimeFirstPeriodOnly {
			for _, ot := range overtime {
				result.Details = append(result.Details, DetailLine{
					ID:      in.ID,
					Name:    in.Name,
					Concept: ot.category.Label(),
					Detail:  fmt.Sprintf("%s horas", ot.hours.String()),
					Amount:  ot.amount,
				})
				*row.Overtime(ot.category) = OvertimeField{Amount: ot.amount, Quantity: ot.hours}
			}
		}

		result.Summaries = append(result.Summaries, row)
	}
	return result
}

type overtimeAmount struct {
	category Category
	hours    decimal.Decimal
	amount   int64
}

// overtimeAmounts prices each active category once for the whole range.
// delta x factor x hours is formed before dividing by the monthly hours so
// the only inexact step is the final division.
func overtimeAmounts(in Input, delta decimal.Decimal) []overtimeAmount {
	var out []overtimeAmount
	for _, c := range activeCategories {
		hours := in.Hours(c)
		if !hours.IsPositive() {
			continue
		}
		amount := generic.RoundCurrency(delta.Mul(c.Factor()).Mul(hours).Div(MonthlyHoursDivisor))
		if amount <= 0 {
			continue
		}
		out = append(out, overtimeAmount{category: c, hours: hours, amount: amount})
	}
	return out
}
