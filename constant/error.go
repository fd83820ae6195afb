package constant

import "net/http"

type ErrorType int

const (
	Successful ErrorType = iota
	ErrInternal
	ErrNotFound
	ErrInvalidRequest
	ErrUnauthorize
	ErrCredentialExists
	ErrInvalidCredentials
	ErrForbidden
	ErrProductNotFound
	ErrCartItemNotFound
	ErrCartEmpty
	ErrAlreadyInWishlist
	ErrNotInWishlist
	ErrReviewNotFound
	ErrCSRFMissing
	ErrCSRFInvalid
	ErrTooManyAttempts
	ErrStorageDisabled
	ErrInvalidOrderStatus
)

var ErrorTypeMessage = map[ErrorType]string{
	Successful:            "success",
	ErrInternal:           "error internal",
	ErrNotFound:           "data not found",
	ErrInvalidRequest:     "invalid request",
	ErrUnauthorize:        "unauthorize request",
	ErrCredentialExists:   "email or username already exists",
	ErrInvalidCredentials: "invalid credentials",
	ErrForbidden:          "Unauthorized",
	ErrProductNotFound:    "Product not found",
	ErrCartItemNotFound:   "Cart item not found",
	ErrCartEmpty:          "Cart is empty",
	ErrAlreadyInWishlist:  "Product is already in wishlist",
	ErrNotInWishlist:      "Product not found in wishlist",
	ErrReviewNotFound:     "Review not found",
	ErrCSRFMissing:        "The CSRF token is missing.",
	ErrCSRFInvalid:        "The CSRF token is invalid.",
	ErrTooManyAttempts:    "too many failed login attempts",
	ErrStorageDisabled:    "image storage is not configured",
	ErrInvalidOrderStatus: "invalid order status",
}

var ErrorTypeHTTPCode = map[ErrorType]int{
	Successful:            http.StatusOK,
	ErrInternal:           http.StatusInternalServerError,
	ErrNotFound:           http.StatusNotFound,
	ErrInvalidRequest:     http.StatusBadRequest,
	ErrUnauthorize:        http.StatusUnauthorized,
	ErrCredentialExists:   http.StatusBadRequest,
	ErrInvalidCredentials: http.StatusUnauthorized,
	ErrForbidden:          http.StatusForbidden,
	ErrProductNotFound:    http.StatusNotFound,
	ErrCartItemNotFound:   http.StatusNotFound,
	ErrCartEmpty:          http.StatusBadRequest,
	ErrAlreadyInWishlist:  http.StatusBadRequest,
	ErrNotInWishlist:      http.StatusNotFound,
	ErrReviewNotFound:     http.StatusNotFound,
	ErrCSRFMissing:        http.StatusBadRequest,
	ErrCSRFInvalid:        http.StatusBadRequest,
	ErrTooManyAttempts:    http.StatusTooManyRequests,
	ErrStorageDisabled:    http.StatusServiceUnavailable,
	ErrInvalidOrderStatus: http.StatusBadRequest,
}

var ErrorTypeCode = map[ErrorType]string{
	Successful:            "0000",
	ErrInternal:           "0001",
	ErrNotFound:           "0002",
	ErrInvalidRequest:     "0003",
	ErrUnauthorize:        "0004",
	ErrCredentialExists:   "0005",
	ErrInvalidCredentials: "0006",
	ErrForbidden:          "0007",
	ErrProductNotFound:    "0008",
	ErrCartItemNotFound:   "0009",
	ErrCartEmpty:          "0010",
	ErrAlreadyInWishlist:  "0011",
	ErrNotInWishlist:      "0012",
	ErrReviewNotFound:     "0013",
	ErrCSRFMissing:        "0014",
	ErrCSRFInvalid:        "0015",
	ErrTooManyAttempts:    "0016",
	ErrStorageDisabled:    "0017",
	ErrInvalidOrderStatus: "0018",
}
