package usecases

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"

	"learnpath.backend/internal/domain/entities"
	domainerrors "learnpath.backend/internal/domain/errors"
	"learnpath.backend/internal/domain/repositories"
)

// ProfileUsecase reads and overwrites the caller's student profile
type ProfileUsecase struct {
	userRepo repositories.UserRepository
}

// NewProfileUsecase creates a new profile usecase
func NewProfileUsecase(userRepo repositories.UserRepository) *ProfileUsecase {
	return &ProfileUsecase{userRepo: userRepo}
}

// Save whitelists raw into a UserProfile and stores it on the caller's
// record together with the display name. Unknown keys are dropped.
// Concurrent saves are last-write-wins.
func (u *ProfileUsecase) Save(ctx context.Context, identity entities.Identity, raw map[string]any) (*entities.UserProfile, error) {
	if identity.IsZero() {
		return nil, domainerrors.Unauthorized("Unauthorized")
	}
	if raw == nil {
		return nil, domainerrors.BadRequest("Missing profile payload")
	}

	user, err := u.userRepo.GetByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.Unauthorized("Unauthorized")
		}
		return nil, err
	}

	profile := WhitelistProfile(raw)
	name := profile.Personal.FullName
	if name == "" {
		name = user.Name
	}

	if err := u.userRepo.UpdateProfile(ctx, user.ID, name, profile); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.Unauthorized("Unauthorized")
		}
		return nil, err
	}
	return profile, nil
}

// Get returns the caller with their stored profile
func (u *ProfileUsecase) Get(ctx context.Context, identity entities.Identity) (*entities.User, error) {
	if identity.IsZero() {
		return nil, domainerrors.Unauthorized("Unauthorized")
	}
	user, err := u.userRepo.GetByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.Unauthorized("Unauthorized")
		}
		return nil, err
	}
	return user, nil
}

// WhitelistProfile copies only the known profile leaves out of raw.
// Strings are trimmed and falsy values become "". experienceYears is
// a number, 0 when missing or unparseable.
func WhitelistProfile(raw map[string]any) *entities.UserProfile {
	personal := subObject(raw, "personal")
	education := subObject(raw, "education")
	professional := subObject(raw, "professional")

	return &entities.UserProfile{
		Personal: entities.PersonalInfo{
			FullName: looseString(personal["fullName"]),
			Phone:    looseString(personal["phone"]),
			Dob:      looseString(personal["dob"]),
			Address:  looseString(personal["address"]),
		},
		Education: entities.EducationInfo{
			HighestDegree: looseString(education["highestDegree"]),
			Institution:   looseString(education["institution"]),
			YearOfPassing: looseString(education["yearOfPassing"]),
			Skills:        looseString(education["skills"]),
		},
		Professional: entities.ProfessionalInfo{
			CurrentCompany:  looseString(professional["currentCompany"]),
			CurrentRole:     looseString(professional["currentRole"]),
			ExperienceYears: looseNumber(professional["experienceYears"]),
			Linkedin:        looseString(professional["linkedin"]),
		},
	}
}

func subObject(raw map[string]any, key string) map[string]any {
	if m, ok := raw[key].(map[string]any); ok {
		return m
	}
	return nil
}

// looseString renders a decoded JSON leaf as trimmed text. Falsy values
// (null, false, 0, "") yield "".
func looseString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case bool:
		if !t {
			return ""
		}
		return "true"
	case float64:
		if t == 0 || math.IsNaN(t) {
			return ""
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case []any:
		parts := make([]string, len(t))
		for i, item := range t {
			parts[i] = looseString(item)
		}
		return strings.TrimSpace(strings.Join(parts, ","))
	case map[string]any:
		return "[object Object]"
	}
	return ""
}

func looseNumber(v any) float64 {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0
		}
		return t
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0
		}
		return f
	}
	return 0
}
