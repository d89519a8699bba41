package utils

func BoolPtr(b bool) *bool {
	return &b
}

func StringPtr(str string) *string {
	return &str
}

func Int64Ptr(i int64) *int64 {
	return &i
}

func GetOrDefault[T any](ptr *T, defaultValue T) T {
	if ptr == nil {
		return defaultValue
	}
	return *ptr
}
