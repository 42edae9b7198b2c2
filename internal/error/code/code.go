package code

// HTTP状态码.
const (
	// StatusOK - 200: 成功.
	StatusOK = 200
	// StatusCreated - 201: 已创建.
	StatusCreated = 201
	// StatusBadRequest - 400: 请求参数错误.
	StatusBadRequest = 400
	// StatusUnauthorized - 401: 未授权.
	StatusUnauthorized = 401
	// StatusForbidden - 403: 禁止访问.
	StatusForbidden = 403
	// StatusNotFound - 404: 资源不存在.
	StatusNotFound = 404
	// StatusConflict - 409: 资源冲突.
	StatusConflict = 409
	// StatusTooManyRequests - 429: 请求过多.
	StatusTooManyRequests = 429
	// StatusInternalServerError - 500: 服务器内部错误.
	StatusInternalServerError = 500
)

// 通用错误码 (100xxx).
const (
	// ErrSuccess - 200: 成功.
	ErrSuccess int = iota + 100000
	// ErrUnknown - 500: 未知错误.
	ErrUnknown
	// ErrBind - 400: 请求参数绑定错误.
	ErrBind
	// ErrValidation - 400: 请求参数验证错误.
	ErrValidation
	// ErrTokenInvalid - 401: 令牌无效.
	ErrTokenInvalid
	// ErrTooManyRequests - 429: 请求频率过高.
	ErrTooManyRequests
	// ErrForbidden - 403: 角色无权访问.
	ErrForbidden
	// ErrCredentials - 401: 邮箱或密码错误.
	ErrCredentials
)

// 小区相关错误码 (101xxx).
const (
	// ErrCondoNotFound - 404: 小区不存在.
	ErrCondoNotFound int = iota + 101000
)

// 用户相关错误码 (102xxx).
const (
	// ErrUserNotFound - 404: 用户不存在.
	ErrUserNotFound int = iota + 102000
	// ErrUserAlreadyExist - 400: 邮箱已被使用.
	ErrUserAlreadyExist
)

// 设施相关错误码 (103xxx).
const (
	// ErrAmenityNotFound - 404: 设施不存在.
	ErrAmenityNotFound int = iota + 103000
)

// 封锁时段相关错误码 (104xxx).
const (
	// ErrBlockNotFound - 404: 封锁时段不存在.
	ErrBlockNotFound int = iota + 104000
)

// 预约相关错误码 (105xxx).
const (
	// ErrReservationNotFound - 404: 预约不存在.
	ErrReservationNotFound int = iota + 105000
	// ErrReservationConflict - 409: 与已有预约重叠.
	ErrReservationConflict
	// ErrReservationBlocked - 409: 与封锁时段重叠.
	ErrReservationBlocked
	// ErrOutsideAvailability - 400: 超出设施开放时间.
	ErrOutsideAvailability
)

// 访客相关错误码 (106xxx).
const (
	// ErrVisitorNotFound - 404: 访客不存在.
	ErrVisitorNotFound int = iota + 106000
)

// 数据库相关错误码 (107xxx).
const (
	// ErrDatabase - 500: 数据库错误.
	ErrDatabase int = iota + 107000
	// ErrRecordNotFound - 404: 记录不存在.
	ErrRecordNotFound
	// ErrConstraint - 400: 外键或唯一约束冲突.
	ErrConstraint
)
