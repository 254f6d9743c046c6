package error

// GenericError is implemented by errors that know how to present themselves
// over the REST surface.
type GenericError interface {
	Error() string
	ErrCode() string
	StatusCode() int
}
