package uart

import (
	"errors"
	"io"
	"strings"
)

var (
	ErrClosed      = errors.New("端口已关闭")
	ErrWriteClosed = errors.New("写入已关闭端口")
	ErrReadClosed  = errors.New("读取已关闭端口")
	ErrWithTimeout = errors.New("超时")
)

// dealErr 错误处理,常见错误整理
func dealErr(err error) error {
	if err == io.EOF {
		return ErrReadClosed
	}
	if err != nil && strings.Contains(err.Error(), "use of closed network connection") {
		return ErrClosed
	}
	return err
}
