// Package cnpj valida el CNPJ (registro de empresas de la Receita Federal) por sus dígitos verificadores.
package cnpj

import (
	"fmt"
	"unicode"
)

// pesos módulo 11 del primer y segundo dígito verificador.
var (
	firstWeights  = [12]int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	secondWeights = [13]int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// Validate acepta "11.222.333/0001-81" o "11222333000181".
func Validate(s string) error {
	digits := extractDigits(s)
	if len(digits) != 14 {
		return fmt.Errorf("cnpj: debe tener 14 dígitos, se encontraron %d", len(digits))
	}
	if allEqual(digits) {
		return fmt.Errorf("cnpj: secuencia repetida inválida")
	}
	d1 := checkDigit(digits[:12], firstWeights[:])
	d2 := checkDigit(append(digits[:12:12], d1), secondWeights[:])
	if digits[12] != d1 || digits[13] != d2 {
		return fmt.Errorf("cnpj: dígitos verificadores inválidos: esperado %c%c, recibido %c%c", d1, d2, digits[12], digits[13])
	}
	return nil
}

// Format devuelve el CNPJ con máscara, o s sin cambios si no tiene 14 dígitos.
func Format(s string) string {
	d := extractDigits(s)
	if len(d) != 14 {
		return s
	}
	return fmt.Sprintf("%s.%s.%s/%s-%s", d[0:2], d[2:5], d[5:8], d[8:12], d[12:14])
}

func checkDigit(digits []byte, weights []int) byte {
	var sum int
	for i, d := range digits {
		sum += int(d-'0') * weights[i]
	}
	r := sum % 11
	if r < 2 {
		return '0'
	}
	return byte('0' + (11 - r))
}

func allEqual(d []byte) bool {
	for _, c := range d[1:] {
		if c != d[0] {
			return false
		}
	}
	return true
}

func extractDigits(s string) []byte {
	var out []byte
	for _, r := range s {
		if unicode.IsDigit(r) && r < 128 {
			out = append(out, byte(r))
		}
	}
	return out
}
