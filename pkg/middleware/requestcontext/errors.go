package requestcontext

type requestcontextError struct {
	status  int
	message string
}

func (e requestcontextError) Error() string {
	return e.message
}
