package dial

import (
	"github.com/goburrow/serial"
	"github.com/injoyai/base/oss"
	"github.com/injoyai/logs"
	"github.com/injoyai/uart"
	serial2 "github.com/injoyai/uart/internal/serial"
	serial3 "go.bug.st/serial"
	"io"
	"time"
)

//================================SerialDial================================

const (
	SerialParityNone = "N" //无校验
	SerialParityEven = "E" //奇校验
	SerialParityOdd  = "O" //偶校验
)

type (
	SerialConfig      = serial.Config
	SerialRS485Config = serial.RS485Config
)

// withSerialDefault 填充默认串口参数
func withSerialDefault(cfg *SerialConfig) *SerialConfig {
	if cfg == nil {
		cfg = &SerialConfig{}
	}
	if cfg.Address == "" {
		cfg.Address = "COM3"
	}
	if cfg.BaudRate == 0 {
		cfg.BaudRate = uart.DefaultBaudRate
	}
	if cfg.DataBits == 0 {
		cfg.DataBits = 8
	}
	if cfg.StopBits == 0 {
		cfg.StopBits = 1
	}
	if len(cfg.Parity) == 0 {
		cfg.Parity = SerialParityNone
	}
	return cfg
}

// Serial 打开串口
func Serial(cfg *SerialConfig) (*serial2.Serial, error) {
	return serial2.New(withSerialDefault(cfg))
}

// WithSerial 打开串口函数
func WithSerial(cfg *SerialConfig) uart.DialFunc {
	return func() (io.ReadWriteCloser, error) {
		return Serial(cfg)
	}
}

// NewSerial 打开串口并包装成端口
func NewSerial(cfg *SerialConfig, options ...uart.Option) (*uart.Port, error) {
	cfg = withSerialDefault(cfg)
	options = append([]uart.Option{uart.WithKey(cfg.Address)}, options...)
	p, err := uart.NewDial(WithSerial(cfg), options...)
	if err != nil {
		return nil, err
	}
	oss.ListenExit(func() { p.Close() })
	return p, nil
}

//================================SerialOther================================

// GetSerialPortList 获取当前串口列表
func GetSerialPortList() ([]string, error) {
	return serial3.GetPortsList()
}

// GetSerialBaudRate 获取波特率列表
func GetSerialBaudRate() []int {
	return []int{
		50, 75,
		110, 134, 150, 200, 300, 600,
		1200, 1800, 2400, 4800, 7200, 9600,
		14400, 19200, 28800, 38400, 57600, 76800,
		115200, 230400,
	}
}

// ScanSerial 扫描串口,逐个参数组合发送探测数据,有应答即认为参数正确
func ScanSerial(addr string, timeout time.Duration, write []byte) (*SerialConfig, []byte) {
	for _, dataBits := range []int{8, 7, 6, 5} {
		for _, stopBits := range []int{1, 2} {
			for _, parity := range []string{SerialParityNone, SerialParityEven, SerialParityOdd} {
				for _, baudRate := range GetSerialBaudRate() {
					cfg := &SerialConfig{
						Address:  addr,
						BaudRate: baudRate,
						DataBits: dataBits,
						StopBits: stopBits,
						Parity:   parity,
						Timeout:  timeout,
					}
					resp, err := func() ([]byte, error) {
						p, err := NewSerial(cfg)
						if err != nil {
							return nil, err
						}
						defer p.Close()
						if _, err := uart.WriteBytes(p, write); err != nil {
							return nil, err
						}
						buf := make([]byte, 64)
						n, err := uart.ReadBytesWithTimeout(p, buf, timeout)
						if err != nil {
							return nil, err
						}
						if n == 0 {
							return nil, uart.ErrWithTimeout
						}
						return buf[:n], nil
					}()
					if err == nil {
						logs.Debug("串口参数:", cfg)
						return cfg, resp
					}
				}
			}
		}
	}
	return nil, nil
}
