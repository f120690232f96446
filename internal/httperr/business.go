package httperr

import "errors"

// BusinessError é um erro de regra de negócio identificado por um
// código estável (snake_case). Os casos de uso devolvem o código; a
// camada HTTP decide status e mensagem.
type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// BusinessCode extrai o código de negócio, ou "" se o erro não for um.
func BusinessCode(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
