package code

// 错误码消息映射
var codeMessageMap = map[int]string{
	// 通用错误码
	ErrSuccess:         "success",
	ErrUnknown:         "internal server error",
	ErrBind:            "invalid request parameters",
	ErrValidation:      "request validation failed",
	ErrTokenInvalid:    "invalid or expired token",
	ErrTooManyRequests: "too many requests, please retry later",
	ErrForbidden:       "you don't have access to this resource",
	ErrCredentials:     "invalid credentials",

	ErrCondoNotFound: "condo not found",

	ErrUserNotFound:     "user not found",
	ErrUserAlreadyExist: "email already registered",

	ErrAmenityNotFound: "amenity not found",

	ErrBlockNotFound: "block not found",

	ErrReservationNotFound: "reservation not found",
	ErrReservationConflict: "time range overlaps an existing reservation",
	ErrReservationBlocked:  "time range overlaps an amenity block",
	ErrOutsideAvailability: "time range is outside the amenity availability window",

	ErrVisitorNotFound: "visitor not found",

	// 数据库相关错误码
	ErrDatabase:       "database error",
	ErrRecordNotFound: "record not found",
	ErrConstraint:     "referenced parent does not exist",
}

// 错误码HTTP状态码映射
var codeStatusMap = map[int]int{
	// 通用错误码
	ErrSuccess:         StatusOK,
	ErrUnknown:         StatusInternalServerError,
	ErrBind:            StatusBadRequest,
	ErrValidation:      StatusBadRequest,
	ErrTokenInvalid:    StatusUnauthorized,
	ErrTooManyRequests: StatusTooManyRequests,
	ErrForbidden:       StatusForbidden,
	ErrCredentials:     StatusUnauthorized,

	ErrCondoNotFound: StatusNotFound,

	ErrUserNotFound:     StatusNotFound,
	ErrUserAlreadyExist: StatusBadRequest,

	ErrAmenityNotFound: StatusNotFound,

	ErrBlockNotFound: StatusNotFound,

	ErrReservationNotFound: StatusNotFound,
	ErrReservationConflict: StatusConflict,
	ErrReservationBlocked:  StatusConflict,
	ErrOutsideAvailability: StatusBadRequest,

	ErrVisitorNotFound: StatusNotFound,

	// 数据库相关错误码
	ErrDatabase:       StatusInternalServerError,
	ErrRecordNotFound: StatusNotFound,
	ErrConstraint:     StatusBadRequest,
}

// GetMessage 获取错误码对应的消息
func GetMessage(code int) string {
	if msg, ok := codeMessageMap[code]; ok {
		return msg
	}
	return "internal server error"
}

// GetStatus 获取错误码对应的HTTP状态码
func GetStatus(code int) int {
	if status, ok := codeStatusMap[code]; ok {
		return status
	}
	return StatusInternalServerError
}
