package uart

import (
	"encoding/base64"
	"encoding/hex"
	"github.com/injoyai/conv"
	"time"
)

//================================WriteOther================================

// WriteString 写入字符串,实现io.StringWriter
func (this *Port) WriteString(s string) (int, error) {
	return this.Write([]byte(s))
}

// WriteHEX 写入16进制数据
func (this *Port) WriteHEX(s string) (int, error) {
	bs, err := hex.DecodeString(s)
	if err != nil {
		return 0, err
	}
	return this.Write(bs)
}

// WriteBase64 写入base64数据
func (this *Port) WriteBase64(s string) (int, error) {
	bs, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return 0, err
	}
	return this.Write(bs)
}

// WriteAny 写入任意数据,根据conv转成字节
func (this *Port) WriteAny(any interface{}) (int, error) {
	return this.Write(conv.Bytes(any))
}

// WriteBytesWithTimeout 限时写入,超时独立作用于每个字节,实现TimeoutBytesWriter
func (this *Port) WriteBytesWithTimeout(p []byte, timeout time.Duration) (int, error) {
	for i, c := range p {
		ok, err := this.WriteByteWithTimeout(c, timeout)
		if err != nil {
			return i, err
		}
		if !ok {
			return i, nil
		}
	}
	return len(p), nil
}

// TryWriteBytes 尝试写入,缓冲满立即停止,实现TryBytesWriter
func (this *Port) TryWriteBytes(p []byte) (int, error) {
	for i, c := range p {
		ok, err := this.TryWriteByte(c)
		if err != nil {
			return i, err
		}
		if !ok {
			return i, nil
		}
	}
	return len(p), nil
}
