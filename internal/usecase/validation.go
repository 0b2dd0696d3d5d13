package usecase

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/xavierca1/tillit-parceiros/internal/entity"
)

const minRandomPixKeyLength = 32

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func validationFailed(errs []ValidationError) error {
	msg := "validation failed: "
	for i, e := range errs {
		if i > 0 {
			msg += ", "
		}
		msg += e.Field + " (" + e.Message + ")"
	}
	return &DomainError{Code: CodeValidation, Message: msg, Fields: errs}
}

func ValidateCreateReferralInput(input CreateReferralInput) []ValidationError {
	var errors []ValidationError

	errors = append(errors, validateName("company_name", input.CompanyName, 2)...)
	errors = append(errors, validateName("contact_name", input.ContactName, 2)...)

	if strings.TrimSpace(input.CNPJ) != "" && !isValidCNPJ(input.CNPJ) {
		errors = append(errors, ValidationError{"cnpj", "must have 14 digits"})
	}

	if strings.TrimSpace(input.Phone) == "" {
		errors = append(errors, ValidationError{"phone", "is required"})
	} else if !isValidPhoneNumber(input.Phone) {
		errors = append(errors, ValidationError{"phone", "must be a valid phone number"})
	}

	if strings.TrimSpace(input.Email) == "" {
		errors = append(errors, ValidationError{"email", "is required"})
	} else if !isValidEmail(input.Email) {
		errors = append(errors, ValidationError{"email", "is invalid"})
	}

	return errors
}

func ValidateRegisterPartnerInput(input RegisterPartnerInput) []ValidationError {
	var errors []ValidationError

	errors = append(errors, validateName("name", input.Name, 3)...)

	if strings.TrimSpace(input.Email) == "" {
		errors = append(errors, ValidationError{"email", "is required"})
	} else if !isValidEmail(input.Email) {
		errors = append(errors, ValidationError{"email", "is invalid"})
	}

	if len(entity.OnlyDigits(input.Phone)) < 10 {
		errors = append(errors, ValidationError{"phone", "must have at least 10 digits"})
	}

	if len(input.Password) < 8 {
		errors = append(errors, ValidationError{"password", "must have at least 8 characters"})
	}

	return errors
}

func ValidateSavePixInput(input SavePixInput) []ValidationError {
	var errors []ValidationError

	keyType := entity.PixKeyType(strings.ToUpper(strings.TrimSpace(input.PixKeyType)))
	if !keyType.Valid() {
		errors = append(errors, ValidationError{"pix_key_type", "must be CPF, CNPJ, EMAIL, PHONE or RANDOM"})
	} else if strings.TrimSpace(input.PixKey) == "" {
		errors = append(errors, ValidationError{"pix_key", "is required"})
	} else {
		switch keyType {
		case entity.PixCPF:
			if !isValidCPF(input.PixKey) {
				errors = append(errors, ValidationError{"pix_key", "CPF must have 11 digits"})
			}
		case entity.PixCNPJ:
			if !isValidCNPJ(input.PixKey) {
				errors = append(errors, ValidationError{"pix_key", "CNPJ must have 14 digits"})
			}
		case entity.PixPhone:
			if !isValidPhoneNumber(input.PixKey) {
				errors = append(errors, ValidationError{"pix_key", "phone must have 10 or 11 digits"})
			}
		case entity.PixEmail:
			if !isValidEmail(input.PixKey) {
				errors = append(errors, ValidationError{"pix_key", "email is invalid"})
			}
		case entity.PixRandom:
			if len(strings.TrimSpace(input.PixKey)) < minRandomPixKeyLength {
				errors = append(errors, ValidationError{"pix_key", "random key is too short"})
			}
		}
	}

	errors = append(errors, validateName("account_holder", input.AccountHolder, 3)...)

	return errors
}

func validateName(field, value string, min int) []ValidationError {
	v := strings.TrimSpace(value)
	switch {
	case v == "":
		return []ValidationError{{field, "is required"}}
	case len([]rune(v)) < min:
		return []ValidationError{{field, fmt.Sprintf("must have at least %d characters", min)}}
	case len([]rune(v)) > 200:
		return []ValidationError{{field, "must not exceed 200 characters"}}
	}
	return nil
}

func isValidEmail(email string) bool {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil {
		return false
	}
	// ParseAddress aceita "Nome <a@b>", aqui só o endereço puro vale.
	return addr.Address == strings.TrimSpace(email)
}

func isValidCPF(cpf string) bool {
	return hasDigits(cpf, 11)
}

func isValidCNPJ(cnpj string) bool {
	return hasDigits(cnpj, 14)
}

func hasDigits(raw string, n int) bool {
	cleaned := entity.OnlyDigits(raw)
	if len(cleaned) != n {
		return false
	}

	for i := 1; i < len(cleaned); i++ {
		if cleaned[i] != cleaned[0] {
			return true
		}
	}
	return false
}

func isValidPhoneNumber(phone string) bool {
	cleaned := entity.OnlyDigits(phone)
	return len(cleaned) >= 10 && len(cleaned) <= 11
}
