package uart

import (
	"io"
	"time"
)

var Null = &null{}

var (
	_ SharedByteWriter   = (*null)(nil)
	_ SharedByteReader   = (*null)(nil)
	_ io.ReadWriteCloser = (*null)(nil)
)

// null 黑洞端口
// 发送端永远成功并丢弃数据,任何操作都不会出错,
// 是"无失败可能的实现始终返回nil"约定的参考实现
// 接收端永远没有数据
type null struct{}

func (this *null) WriteByte(c byte) error { return nil }

func (this *null) WriteByteWithTimeout(c byte, timeout time.Duration) (bool, error) {
	return true, nil
}

func (this *null) TryWriteByte(c byte) (bool, error) { return true, nil }

func (this *null) Write(p []byte) (int, error) { return len(p), nil }

func (this *null) ReadByte() (byte, error) { return 0, ErrReadClosed }

func (this *null) ReadByteWithTimeout(timeout time.Duration) (byte, bool, error) {
	return 0, false, nil
}

func (this *null) TryReadByte() (byte, bool, error) { return 0, false, nil }

func (this *null) Read(p []byte) (int, error) { return 0, io.EOF }

func (this *null) Close() error { return nil }
