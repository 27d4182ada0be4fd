package errs

import "fmt"

// ErrDuplicatedIP Кастомная ошибка, сообщающая о том, что запись с таким IP адресом уже существует.
type ErrDuplicatedIP struct {
	Err error
}

func (di *ErrDuplicatedIP) Error() string {
	return fmt.Sprintf("Сервер с таким IP адресом уже существует. Ошибка: %v", di.Err)
}

func (di *ErrDuplicatedIP) Unwrap() error {
	return di.Err
}

func NewErrDuplicatedIP(err error) *ErrDuplicatedIP {
	return &ErrDuplicatedIP{
		Err: err,
	}
}

// ErrDuplicatedNameProvider Кастомная ошибка, сообщающая о том, что пара (имя, провайдер) уже занята другой записью.
type ErrDuplicatedNameProvider struct {
	Err error
}

func (dn *ErrDuplicatedNameProvider) Error() string {
	return fmt.Sprintf("Сервер с такой парой имя/провайдер уже существует. Ошибка: %v", dn.Err)
}

func (dn *ErrDuplicatedNameProvider) Unwrap() error {
	return dn.Err
}

func NewErrDuplicatedNameProvider(err error) *ErrDuplicatedNameProvider {
	return &ErrDuplicatedNameProvider{
		Err: err,
	}
}

// ErrServerNotFound Кастомная ошибка, сообщающая о том, что сервер не найден (не существует или был удален).
type ErrServerNotFound struct {
	Err error
	ID  int64
}

func (no *ErrServerNotFound) Error() string {
	return fmt.Sprintf("Сервер id=%d не найден. Ошибка: %v", no.ID, no.Err)
}

func (no *ErrServerNotFound) Unwrap() error {
	return no.Err
}

func NewErrServerNotFound(id int64, err error) *ErrServerNotFound {
	if err == nil {
		err = fmt.Errorf("сервер не найден")
	}

	return &ErrServerNotFound{
		Err: err,
		ID:  id,
	}
}
