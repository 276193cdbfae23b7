package validate

import (
	"net/url"

	"mini-admin/internal/model"

	"github.com/google/uuid"
)

type createUserForm struct {
	Name     string `form:"name" validate:"required,max=255"`
	Email    string `form:"email" validate:"required,email,max=255"`
	Password string `form:"password" validate:"required,min=6,max=72"`
	Role     string `form:"role" validate:"required,oneof=user admin"`
}

type updateUserForm struct {
	ID    string `form:"id" validate:"required,uuid"`
	Name  string `form:"name" validate:"required,max=255"`
	Email string `form:"email" validate:"required,email,max=255"`
	Role  string `form:"role" validate:"required,oneof=user admin"`
}

type idForm struct {
	ID string `form:"id" validate:"required,uuid"`
}

// CreateUser validates a create-user submission. An omitted role defaults to
// "user".
func CreateUser(form url.Values) (model.CreateUserInput, model.FieldErrors) {
	f := createUserForm{
		Name:     value(form, FieldName),
		Email:    value(form, FieldEmail),
		Password: value(form, FieldPassword),
		Role:     value(form, FieldRole),
	}
	if f.Role == "" {
		f.Role = model.RoleUser
	}

	errs := model.FieldErrors{}
	check(f, errs, userMessages)
	if len(errs) > 0 {
		return model.CreateUserInput{}, errs
	}

	return model.CreateUserInput{
		Name:     f.Name,
		Email:    f.Email,
		Password: f.Password,
		Role:     f.Role,
	}, nil
}

// UpdateUser validates an update-user submission. Every field is required.
func UpdateUser(form url.Values) (model.UpdateUserInput, model.FieldErrors) {
	f := updateUserForm{
		ID:    value(form, FieldID),
		Name:  value(form, FieldName),
		Email: value(form, FieldEmail),
		Role:  value(form, FieldRole),
	}

	errs := model.FieldErrors{}
	check(f, errs, userMessages)
	if len(errs) > 0 {
		return model.UpdateUserInput{}, errs
	}

	return model.UpdateUserInput{
		ID:    uuid.MustParse(f.ID),
		Name:  f.Name,
		Email: f.Email,
		Role:  f.Role,
	}, nil
}

// DeleteByID validates a delete submission carrying only the record id.
func DeleteByID(form url.Values) (uuid.UUID, model.FieldErrors) {
	f := idForm{ID: value(form, FieldID)}

	errs := model.FieldErrors{}
	check(f, errs, userMessages)
	if len(errs) > 0 {
		return uuid.Nil, errs
	}
	return uuid.MustParse(f.ID), nil
}
