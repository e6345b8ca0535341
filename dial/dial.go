package dial

import (
	"github.com/injoyai/uart"
	"io"
	"net"
)

//================================TCPDial================================

// TCP 连接远程串口服务(ser2net等)
func TCP(addr string) (io.ReadWriteCloser, error) {
	return net.Dial("tcp", addr)
}

// WithTCP 连接函数
func WithTCP(addr string) uart.DialFunc {
	return func() (io.ReadWriteCloser, error) { return TCP(addr) }
}

// NewTCP 连接远程串口服务并包装成端口
func NewTCP(addr string, options ...uart.Option) (*uart.Port, error) {
	options = append([]uart.Option{uart.WithKey(addr)}, options...)
	return uart.NewDial(WithTCP(addr), options...)
}
