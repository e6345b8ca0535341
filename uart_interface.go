package uart

import (
	"time"
)

/*
能力接口,参考C的getc/putc思路,把单字节原语和具体硬件解耦
按 发送/接收 × 阻塞/限时/非阻塞 × 独占/共享 划分,
具体实现按自身硬件支持情况选择实现其中任意子集,
多字节操作见uart_func.go,由单字节原语推导,无需实现
*/

//================================Exclusive================================

// 独占系列,调用期间需要独占端口句柄,同一时刻只允许一个调用方

// ByteWriter 阻塞写入单字节
// 阻塞直到字节被放入发送缓冲,不代表字节已经从线上发出
// 无失败可能的实现(例如内存队列)始终返回nil
type ByteWriter interface {
	WriteByte(c byte) error
}

// TimeoutByteWriter 限时阻塞写入单字节,超时独立作用于每次调用
// 返回(true,nil)表示字节已被接受
// 返回(false,nil)表示超时,字节未被接受
type TimeoutByteWriter interface {
	WriteByteWithTimeout(c byte, timeout time.Duration) (bool, error)
}

// TryByteWriter 尝试写入单字节,立即返回,永不阻塞
// 返回(false,nil)表示发送缓冲已满,稍后重试
type TryByteWriter interface {
	TryWriteByte(c byte) (bool, error)
}

// ByteReader 阻塞读取单字节,直到有数据可读
type ByteReader interface {
	ReadByte() (byte, error)
}

// TimeoutByteReader 限时阻塞读取单字节
// 返回(0,false,nil)表示超时,期间无数据到达
type TimeoutByteReader interface {
	ReadByteWithTimeout(timeout time.Duration) (byte, bool, error)
}

// TryByteReader 尝试读取单字节,立即返回,永不阻塞
// 返回(0,false,nil)表示当前无数据
type TryByteReader interface {
	TryReadByte() (byte, bool, error)
}

//================================Shared================================

// 共享系列,语义与独占系列一致,另外承诺可以并发调用,
// 需要互斥时由实现内部处理,调用方无需独占句柄
// Go的接口无法表达独占引用,独占与共享的区别在于约定而非类型,
// 满足共享系列的类型天然满足对应的独占系列

// SharedByteWriter 阻塞写入单字节,可并发调用
type SharedByteWriter interface {
	WriteByte(c byte) error
}

// SharedTimeoutByteWriter 限时阻塞写入单字节,可并发调用
type SharedTimeoutByteWriter interface {
	WriteByteWithTimeout(c byte, timeout time.Duration) (bool, error)
}

// SharedTryByteWriter 尝试写入单字节,可并发调用
type SharedTryByteWriter interface {
	TryWriteByte(c byte) (bool, error)
}

// SharedByteReader 阻塞读取单字节,可并发调用
type SharedByteReader interface {
	ReadByte() (byte, error)
}

// SharedTimeoutByteReader 限时阻塞读取单字节,可并发调用
type SharedTimeoutByteReader interface {
	ReadByteWithTimeout(timeout time.Duration) (byte, bool, error)
}

// SharedTryByteReader 尝试读取单字节,可并发调用
type SharedTryByteReader interface {
	TryReadByte() (byte, bool, error)
}

//================================Batch================================

// 批量系列,可选实现
// uart_func.go的推导函数优先使用批量方法(类似io.Copy对io.WriterTo的处理),
// 实现内部可以批量优化,但必须保持字节顺序和进度计数的语义不变

// BytesWriter 批量写入
// 返回已写入的字节数,err为nil时等于len(p)
type BytesWriter interface {
	WriteBytes(p []byte) (int, error)
}

// TimeoutBytesWriter 批量限时写入,超时独立作用于每个字节
type TimeoutBytesWriter interface {
	WriteBytesWithTimeout(p []byte, timeout time.Duration) (int, error)
}

// TryBytesWriter 批量尝试写入
type TryBytesWriter interface {
	TryWriteBytes(p []byte) (int, error)
}

// BytesReader 批量读取,填满buf为止
type BytesReader interface {
	ReadBytes(buf []byte) (int, error)
}

// TimeoutBytesReader 批量限时读取
type TimeoutBytesReader interface {
	ReadBytesWithTimeout(buf []byte, timeout time.Duration) (int, error)
}

// TryBytesReader 批量尝试读取
type TryBytesReader interface {
	TryReadBytes(buf []byte) (int, error)
}

//================================Other================================

// Closed 是否已关闭
type Closed interface{ Closed() bool }

// Debugger 是否调试
type Debugger interface{ Debug(b ...bool) }
