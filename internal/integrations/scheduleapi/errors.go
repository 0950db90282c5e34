package scheduleapi

import "errors"

var (
	// ErrBackendUnavailable возвращается, когда health-проба не прошла:
	// бэкенд расписаний не запущен или недоступен
	ErrBackendUnavailable = errors.New("scheduleapi client: scheduling API is not running")

	// ErrRequestFailed возвращается при не-2xx ответе с декодируемым
	// телом ошибки (сообщение берётся из поля detail)
	ErrRequestFailed = errors.New("scheduleapi client: request failed")

	// ErrMalformedResponse возвращается, когда вместо JSON пришло что-то
	// другое — признак неправильно настроенного бэкенда
	ErrMalformedResponse = errors.New("scheduleapi client: server is not responding correctly")

	// ErrNetwork возвращается при транспортной ошибке (DNS, connection refused)
	ErrNetwork = errors.New("scheduleapi client: network error")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("scheduleapi client: internal error")
)
