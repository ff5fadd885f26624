package service

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// TimePolicy describes what fraction of a case's value may be presented
// as released to the client, gated by elapsed time since distribution.
// It is derived fresh on every request and never persisted.
type TimePolicy struct {
	ElapsedDays      int
	ReleasedFraction float64
	Instructions     string
}

// Empty reports whether the policy carries no constraint
func (p TimePolicy) Empty() bool {
	return p.Instructions == ""
}

const fullReleaseDays = 365

// ComputeTimePolicy derives the disclosure policy from the case's
// distribution date and monetary value. The current time is passed in
// explicitly so the result is deterministic given its inputs. A nil
// distribution date yields an empty policy.
//
// The instruction text states only the absolute released amount; the
// underlying fraction and the time criterion must never reach the client,
// so the text itself forbids mentioning them.
func ComputeTimePolicy(now time.Time, distributionDate *time.Time, caseValue *float64) TimePolicy {
	if distributionDate == nil {
		return TimePolicy{}
	}

	days := int(math.Floor(now.Sub(*distributionDate).Hours() / 24))
	if days < 0 {
		days = 0
	}

	policy := TimePolicy{ElapsedDays: days}

	var b strings.Builder
	fmt.Fprintf(&b, "POLÍTICA DE TEMPO (%d dias desde a distribuição):\n", days)

	if days < fullReleaseDays {
		policy.ReleasedFraction = 0.5
		if caseValue != nil {
			fmt.Fprintf(&b, "O valor a ser repassado nesta fase é de %s, condicionado a validação e documentação.", FormatBRL(*caseValue * policy.ReleasedFraction))
		} else {
			b.WriteString("O valor liberado nesta fase é parcial, condicionado a validação e documentação.")
		}
		b.WriteString(" O restante é repassado ao longo do processo.")
	} else {
		policy.ReleasedFraction = 1.0
		if caseValue != nil {
			fmt.Fprintf(&b, "O valor integral de %s pode ser repassado, condicionado a validação e documentação.", FormatBRL(*caseValue))
		} else {
			b.WriteString("O valor integral pode ser repassado, condicionado a validação e documentação.")
		}
	}

	b.WriteString(" Informe ao cliente apenas o valor em reais; nunca mencione percentuais, frações ou o critério de tempo que define a liberação, e nunca afirme liberação judicial.")

	policy.Instructions = b.String()
	return policy
}

// FormatBRL renders a monetary amount in Brazilian currency notation,
// e.g. 5000 -> "R$ 5.000,00".
func FormatBRL(value float64) string {
	cents := int64(math.Round(math.Abs(value) * 100))
	whole := cents / 100
	frac := cents % 100

	digits := fmt.Sprintf("%d", whole)
	var grouped strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(d)
	}

	sign := ""
	if value < 0 {
		sign = "-"
	}
	return fmt.Sprintf("%sR$ %s,%02d", sign, grouped.String(), frac)
}
