package money

import (
	"fmt"
	"strconv"
	"strings"
)

// Amount é um valor monetário em centavos (BRL).
type Amount int64

// ParseBRL converte um rótulo de preço legado ("R$ 1.234,56", "R$ 50,00")
// em centavos. Rótulos fora do formato retornam erro explícito; o chamador
// decide se reporta e pula o registro.
func ParseBRL(label string) (Amount, error) {
	s := strings.TrimSpace(label)
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimSpace(s)

	if s == "" {
		return 0, fmt.Errorf("valor vazio: %q", label)
	}

	// separador de milhar pt-BR
	s = strings.ReplaceAll(s, ".", "")

	whole := s
	cents := "00"
	if i := strings.LastIndex(s, ","); i >= 0 {
		whole = s[:i]
		cents = s[i+1:]
	}

	if whole == "" || len(cents) != 2 {
		return 0, fmt.Errorf("formato de valor inválido: %q", label)
	}

	reais, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("formato de valor inválido: %q", label)
	}
	centavos, err := strconv.ParseInt(cents, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("formato de valor inválido: %q", label)
	}

	return Amount(reais*100 + centavos), nil
}

// FormatBRL formata centavos como "R$ 1.234,56".
func (a Amount) FormatBRL() string {
	neg := a < 0
	if neg {
		a = -a
	}

	reais := int64(a) / 100
	centavos := int64(a) % 100

	digits := strconv.FormatInt(reais, 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}

	sign := ""
	if neg {
		sign = "-"
	}
	return fmt.Sprintf("%sR$ %s,%02d", sign, b.String(), centavos)
}

// Float retorna o valor em reais, para integrações que exigem ponto
// flutuante (ex.: MercadoPago).
func (a Amount) Float() float64 {
	return float64(a) / 100
}
