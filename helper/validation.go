package helper

import (
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/pt"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	pttranslations "github.com/go-playground/validator/v10/translations/pt"

	"ipss-cms/models"
)

var (
	validationOnce  sync.Once
	validationErr   error
	sharedValidator *validator.Validate
	sharedTrans     ut.Translator
)

// Validation returns gin's binding validator configured to report json/form
// field names and translate messages to Portuguese.
func Validation() (*validator.Validate, ut.Translator, error) {
	validationOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			validationErr = errors.New("unexpected binding validator engine")
			return
		}
		v.RegisterTagNameFunc(fieldName)

		locale := pt.New()
		uni := ut.New(locale, locale)
		trans, _ := uni.GetTranslator("pt")
		if err := pttranslations.RegisterDefaultTranslations(v, trans); err != nil {
			validationErr = err
			return
		}
		sharedValidator, sharedTrans = v, trans
	})
	return sharedValidator, sharedTrans, validationErr
}

func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// FieldErrors flattens a binding error into campo/mensagem pairs.
func (u *HTTPHelper) FieldErrors(err error) []models.FieldError {
	return TranslateErrors(err, u.Translator, "")
}

// TranslateErrors converts validator and JSON decoding errors. prefix is
// prepended to field paths, e.g. "detalhes".
func TranslateErrors(err error, trans ut.Translator, prefix string) []models.FieldError {
	withPrefix := func(name string) string {
		if prefix == "" {
			return name
		}
		if name == "" {
			return prefix
		}
		return prefix + "." + name
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]models.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			msg := fe.Error()
			if trans != nil {
				msg = fe.Translate(trans)
			}
			out = append(out, models.FieldError{Field: withPrefix(namespace(fe)), Message: msg})
		}
		return out
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return []models.FieldError{{Field: withPrefix(typeErr.Field), Message: "tipo de valor inválido"}}
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return []models.FieldError{{Field: withPrefix("body"), Message: "JSON inválido"}}
	}

	if name, ok := strings.CutPrefix(err.Error(), "json: unknown field "); ok {
		return []models.FieldError{{Field: withPrefix(strings.Trim(name, `"`)), Message: "campo não permitido"}}
	}

	if errors.Is(err, io.EOF) {
		return []models.FieldError{{Field: withPrefix("body"), Message: "corpo do pedido vazio"}}
	}

	return []models.FieldError{{Field: withPrefix("body"), Message: err.Error()}}
}

// namespace drops the root struct name: "InscriptionRequest.pessoa.nome" -> "pessoa.nome".
func namespace(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}
