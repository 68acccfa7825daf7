package utils

import "strings"

// CEPLength é a quantidade de dígitos de um CEP
const CEPLength = 8

// DigitsOnly remove tudo que não for dígito ASCII
// Exemplo: "14.900-000" -> "14900000"
func DigitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// IsValidCEP verifica se a string tem exatamente 8 dígitos e nada mais
func IsValidCEP(cep string) bool {
	if len(cep) != CEPLength {
		return false
	}
	return DigitsOnly(cep) == cep
}

// FormatCEP formata um CEP de 8 dígitos como NNNNN-NNN.
// Valores que não têm 8 dígitos são devolvidos sem alteração.
func FormatCEP(cep string) string {
	digits := DigitsOnly(cep)
	if len(digits) != CEPLength {
		return cep
	}
	return digits[:5] + "-" + digits[5:]
}
