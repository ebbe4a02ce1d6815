package subscription

import "foodgram-backend/internal/shared/apperror"

var (
	ErrSelfSubscription     = apperror.Validation("You cannot subscribe to yourself!")
	ErrAlreadySubscribed    = apperror.AlreadyExists("You are already subscribed to this author!")
	ErrSubscriptionNotFound = apperror.NotFound("You are not subscribed to this author.")
	ErrAuthorNotFound       = apperror.NotFound("Not found.")
)
