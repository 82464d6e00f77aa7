// Package businessflow contains the core business logic and use cases for the editorial and ad-serving workflows
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// User/auth errors
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrIncorrectPassword  = errors.New("incorrect password")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrUserSelfTarget     = errors.New("cannot deactivate or remove your own account")
	ErrForbidden          = errors.New("operation not permitted for this role")

	// News errors
	ErrNewsNotFound           = errors.New("news not found")
	ErrNewsDeleted            = errors.New("news is deleted")
	ErrNewsNotDeleted         = errors.New("news is not deleted")
	ErrSameStatusTransition   = errors.New("news already has the requested status")
	ErrInvalidStatusValue     = errors.New("invalid news status")
	ErrNewsTitleRequired      = errors.New("news title is required")
	ErrNewsContentRequired    = errors.New("news content is required")
	ErrNewsLangRequired       = errors.New("news language is required")
	ErrNewsSlugTaken          = errors.New("slug already exists for this language")
	ErrUnpublishBeforePublish = errors.New("unpublish time must be after publish time")
	ErrNewsUpdateRequired     = errors.New("at least one field must be provided for update")

	// Category/tag errors
	ErrCategoryNotFound      = errors.New("category not found")
	ErrCategoryInactive      = errors.New("category is inactive")
	ErrCategorySlugTaken     = errors.New("category slug already exists for this language")
	ErrCategoryHasChildren   = errors.New("category has child categories")
	ErrCategoryParentInvalid = errors.New("category cannot be its own parent")
	ErrTagNotFound           = errors.New("tag not found")
	ErrTagCodeTaken          = errors.New("tag code already exists")

	// Media errors
	ErrMediaNotFound           = errors.New("media not found")
	ErrMediaContentTypeInvalid = errors.New("unsupported media content type")
	ErrMediaTooLarge           = errors.New("media file is too large")
	ErrMediaInUse              = errors.New("media is referenced by other content")

	// Ads errors
	ErrCampaignNotFound          = errors.New("campaign not found")
	ErrCampaignNameRequired      = errors.New("campaign name is required")
	ErrCampaignEnded             = errors.New("campaign has ended")
	ErrInvalidCampaignTransition = errors.New("invalid campaign status transition")
	ErrCampaignWindowInvalid     = errors.New("campaign end time must be after start time")
	ErrCreativeNotFound          = errors.New("creative not found")
	ErrCreativeCampaignMismatch  = errors.New("creative does not belong to the given campaign")
	ErrPlacementNotFound         = errors.New("placement not found")
	ErrPlacementInactive         = errors.New("placement is inactive")
	ErrPlacementCodeTaken        = errors.New("placement code already exists")
	ErrAssignmentNotFound        = errors.New("assignment not found")
	ErrAssignmentExists          = errors.New("assignment already exists for this placement and creative")
	ErrWeightOutOfRange          = errors.New("weight must be between 0 and 100")
	ErrAssignmentWindowInvalid   = errors.New("assignment end time must be after start time")
	ErrNoEligibleAd              = errors.New("no eligible ad for this placement")

	// Filter errors
	ErrInvalidPage           = errors.New("page must be at least 1")
	ErrInvalidPageSize       = errors.New("page size must be between 1 and 100")
	ErrStartDateAfterEndDate = errors.New("start date cannot be after end date")

	ErrCacheNotAvailable = errors.New("cache not available")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NewBusinessErrorf(code, message string, err error, args ...any) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: fmt.Sprintf(message, args...),
		Err:     err,
	}
}

func IsUserNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}

func IsUserInactive(err error) bool {
	return errors.Is(err, ErrUserInactive)
}

func IsInvalidCredentials(err error) bool {
	return errors.Is(err, ErrInvalidCredentials)
}

func IsIncorrectPassword(err error) bool {
	return errors.Is(err, ErrIncorrectPassword)
}

func IsUsernameTaken(err error) bool {
	return errors.Is(err, ErrUsernameTaken)
}

func IsUserSelfTarget(err error) bool {
	return errors.Is(err, ErrUserSelfTarget)
}

func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

func IsNewsNotFound(err error) bool {
	return errors.Is(err, ErrNewsNotFound)
}

func IsSameStatusTransition(err error) bool {
	return errors.Is(err, ErrSameStatusTransition)
}

func IsNewsSlugTaken(err error) bool {
	return errors.Is(err, ErrNewsSlugTaken)
}

func IsCategoryNotFound(err error) bool {
	return errors.Is(err, ErrCategoryNotFound)
}

func IsTagNotFound(err error) bool {
	return errors.Is(err, ErrTagNotFound)
}

func IsMediaNotFound(err error) bool {
	return errors.Is(err, ErrMediaNotFound)
}

func IsMediaInUse(err error) bool {
	return errors.Is(err, ErrMediaInUse)
}

func IsCampaignNotFound(err error) bool {
	return errors.Is(err, ErrCampaignNotFound)
}

func IsInvalidCampaignTransition(err error) bool {
	return errors.Is(err, ErrInvalidCampaignTransition)
}

func IsCreativeNotFound(err error) bool {
	return errors.Is(err, ErrCreativeNotFound)
}

func IsPlacementNotFound(err error) bool {
	return errors.Is(err, ErrPlacementNotFound)
}

func IsAssignmentNotFound(err error) bool {
	return errors.Is(err, ErrAssignmentNotFound)
}

func IsAssignmentExists(err error) bool {
	return errors.Is(err, ErrAssignmentExists)
}

func IsNoEligibleAd(err error) bool {
	return errors.Is(err, ErrNoEligibleAd)
}
