package validation

import (
	"encoding/json"
	"sort"
	"strings"

	"taskmanager/internal/adapter/http/dto"
	"taskmanager/internal/core/domain"
)

var UserFields = domain.UserPatchFields

func BuildCreateUserInput(req dto.CreateUserRequest, raw map[string]json.RawMessage) (domain.CreateUserInput, error) {
	if details := nonNullable(raw, UserFields...); len(details) > 0 {
		return domain.CreateUserInput{}, newPayloadError(ErrInvalidUserPayload, details...)
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	req.FullName = strings.TrimSpace(req.FullName)
	if err := validate(&req, ErrInvalidUserPayload); err != nil {
		return domain.CreateUserInput{}, err
	}

	return domain.CreateUserInput{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
	}, nil
}

func BuildUserPatch(req dto.UpdateUserRequest, raw map[string]json.RawMessage) (domain.UserPatch, error) {
	if details := nonNullable(raw, UserFields...); len(details) > 0 {
		return domain.UserPatch{}, newPayloadError(ErrInvalidUserPayload, details...)
	}

	req.Username = trimmed(req.Username)
	req.Email = trimmed(req.Email)
	req.FullName = trimmed(req.FullName)

	var blank []string
	for field, value := range map[string]*string{"username": req.Username, "email": req.Email, "full_name": req.FullName} {
		if value != nil && *value == "" {
			blank = append(blank, field+" must not be blank")
		}
	}
	if len(blank) > 0 {
		sort.Strings(blank)
		return domain.UserPatch{}, newPayloadError(ErrInvalidUserPayload, blank...)
	}

	if err := validate(&req, ErrInvalidUserPayload); err != nil {
		return domain.UserPatch{}, err
	}

	return domain.UserPatch{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
	}, nil
}
