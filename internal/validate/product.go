package validate

import (
	"net/url"
	"strconv"
	"strings"

	"mini-admin/internal/model"

	"github.com/google/uuid"
)

// productFields carries the fields shared by create and update. Numeric
// fields are parsed before the rules run; a value that fails to parse is left
// at zero, which the range rules accept, so it is reported once.
type productFields struct {
	Name        string
	Description string
	Price       float64
	Stock       int
	Category    string
	Image       string
}

type createProductForm struct {
	Name        string  `form:"name" validate:"required,max=255"`
	Description string  `form:"description" validate:"max=1000"`
	Price       float64 `form:"price" validate:"min=0,max=9999999999.99"`
	Stock       int     `form:"stock" validate:"min=0,max=2147483647"`
	Category    string  `form:"category" validate:"max=100"`
	Image       string  `form:"image" validate:"omitempty,url"`
	UserID      string  `form:"userId" validate:"required,uuid"`
}

type updateProductForm struct {
	ID          string  `form:"id" validate:"required,uuid"`
	Name        string  `form:"name" validate:"required,max=255"`
	Description string  `form:"description" validate:"max=1000"`
	Price       float64 `form:"price" validate:"min=0,max=9999999999.99"`
	Stock       int     `form:"stock" validate:"min=0,max=2147483647"`
	Category    string  `form:"category" validate:"max=100"`
	Image       string  `form:"image" validate:"omitempty,url"`
}

// priceScale is the number of decimal places the price column stores.
const priceScale = 2

// decimalPlaces counts the fractional digits of the shortest decimal form of n.
func decimalPlaces(n float64) int {
	s := strconv.FormatFloat(n, 'f', -1, 64)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}

// decodeProductFields copies the shared fields out of form. Numbers that do
// not parse are reported in errs and left at zero.
func decodeProductFields(form url.Values, stockRequired bool, errs model.FieldErrors) productFields {
	f := productFields{
		Name:        value(form, FieldName),
		Description: value(form, FieldDescription),
		Category:    value(form, FieldCategory),
		Image:       value(form, FieldImage),
	}

	if raw := value(form, FieldPrice); raw == "" {
		errs.Add(FieldPrice, productMessages.message(FieldPrice, "required"))
	} else if n, ok := parseNumber(raw); !ok {
		errs.Add(FieldPrice, productMessages.message(FieldPrice, "number"))
	} else if decimalPlaces(n) > priceScale {
		errs.Add(FieldPrice, productMessages.message(FieldPrice, "scale"))
	} else {
		f.Price = n
	}

	if raw := value(form, FieldStock); raw == "" {
		if stockRequired {
			errs.Add(FieldStock, productMessages.message(FieldStock, "integer"))
		}
	} else if n, ok := parseInt(raw); ok {
		f.Stock = n
	} else {
		errs.Add(FieldStock, productMessages.message(FieldStock, "integer"))
	}

	return f
}

// CreateProduct validates a create-product submission. An omitted stock
// defaults to 0; empty optional strings are treated as absent.
func CreateProduct(form url.Values) (model.CreateProductInput, model.FieldErrors) {
	errs := model.FieldErrors{}
	pf := decodeProductFields(form, false, errs)
	f := createProductForm{
		Name:        pf.Name,
		Description: pf.Description,
		Price:       pf.Price,
		Stock:       pf.Stock,
		Category:    pf.Category,
		Image:       pf.Image,
		UserID:      value(form, FieldUserID),
	}
	check(f, errs, productMessages)
	if len(errs) > 0 {
		return model.CreateProductInput{}, errs
	}

	return model.CreateProductInput{
		Name:        f.Name,
		Description: optional(f.Description),
		Price:       f.Price,
		Stock:       f.Stock,
		Category:    optional(f.Category),
		Image:       optional(f.Image),
		UserID:      uuid.MustParse(f.UserID),
	}, nil
}

// UpdateProduct validates an update-product submission. Stock is required;
// the owner cannot be changed.
func UpdateProduct(form url.Values) (model.UpdateProductInput, model.FieldErrors) {
	errs := model.FieldErrors{}
	pf := decodeProductFields(form, true, errs)
	f := updateProductForm{
		ID:          value(form, FieldID),
		Name:        pf.Name,
		Description: pf.Description,
		Price:       pf.Price,
		Stock:       pf.Stock,
		Category:    pf.Category,
		Image:       pf.Image,
	}
	check(f, errs, productMessages)
	if len(errs) > 0 {
		return model.UpdateProductInput{}, errs
	}

	return model.UpdateProductInput{
		ID:          uuid.MustParse(f.ID),
		Name:        f.Name,
		Description: optional(f.Description),
		Price:       f.Price,
		Stock:       f.Stock,
		Category:    optional(f.Category),
		Image:       optional(f.Image),
	}, nil
}
