package service

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrNoIngredients       = errors.New("please add some ingredients first")
	ErrEmptyCraving        = errors.New("please describe what you're craving")
	ErrEmptyIngredient     = errors.New("ingredient name is empty")
	ErrDuplicateIngredient = errors.New("ingredient already exists")
	ErrNoAPIKey            = errors.New("no valid OpenAI API key found; set one in settings or switch to proxy mode")
	ErrInvalidAPIKey       = errors.New("please enter a valid OpenAI API key (should start with sk-)")
	ErrProxyMode           = errors.New("API key not needed when using proxy mode")
	ErrInvalidMode         = errors.New("api mode must be proxy or direct")
	ErrConnection          = errors.New("connection test failed")
)
