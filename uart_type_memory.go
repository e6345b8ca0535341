package uart

import (
	"io"
	"sync"
	"time"
)

var (
	_ SharedByteWriter        = (*Memory)(nil)
	_ SharedTimeoutByteWriter = (*Memory)(nil)
	_ SharedTryByteWriter     = (*Memory)(nil)
	_ SharedByteReader        = (*Memory)(nil)
	_ SharedTimeoutByteReader = (*Memory)(nil)
	_ SharedTryByteReader     = (*Memory)(nil)
	_ io.ReadWriteCloser      = (*Memory)(nil)
	_ io.ReadWriteCloser      = (*Duplex)(nil)
)

// NewMemory 新建内存FIFO,模拟硬件的收发缓冲
// 通道天然并发安全,共享系列的接口全部满足
func NewMemory(size int) *Memory {
	if size <= 0 {
		size = DefaultBufferSize
	}
	return &Memory{
		ch:     make(chan byte, size),
		closed: make(chan struct{}),
	}
}

// Memory 固定容量的内存FIFO
// 写入端满则阻塞,读取端空则阻塞,限时和尝试系列按各自语义处理
// 端口未关闭时任何操作都不会产生错误
type Memory struct {
	ch     chan byte     //数据队列
	closed chan struct{} //关闭信号
	once   sync.Once
}

//================================Write================================

// WriteByte 写入单字节,缓冲满则阻塞
func (this *Memory) WriteByte(c byte) error {
	select {
	case <-this.closed:
		return ErrWriteClosed
	default:
	}
	select {
	case this.ch <- c:
		return nil
	case <-this.closed:
		return ErrWriteClosed
	}
}

// WriteByteWithTimeout 写入单字节或超时
func (this *Memory) WriteByteWithTimeout(c byte, timeout time.Duration) (bool, error) {
	select {
	case <-this.closed:
		return false, ErrWriteClosed
	default:
	}
	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case this.ch <- c:
		return true, nil
	case <-t.C:
		return false, nil
	case <-this.closed:
		return false, ErrWriteClosed
	}
}

// TryWriteByte 尝试写入单字节,缓冲满返回false
func (this *Memory) TryWriteByte(c byte) (bool, error) {
	select {
	case <-this.closed:
		return false, ErrWriteClosed
	default:
	}
	select {
	case this.ch <- c:
		return true, nil
	default:
		return false, nil
	}
}

// Write 写入字节,实现io.Writer
func (this *Memory) Write(p []byte) (int, error) {
	for i, c := range p {
		if err := this.WriteByte(c); err != nil {
			return i, err
		}
	}
	return len(p), nil
}

//================================Read================================

// ReadByte 读取单字节,无数据则阻塞
// 关闭后允许读完残留数据,读空返回ErrReadClosed
func (this *Memory) ReadByte() (byte, error) {
	select {
	case c := <-this.ch:
		return c, nil
	case <-this.closed:
		select {
		case c := <-this.ch:
			return c, nil
		default:
			return 0, ErrReadClosed
		}
	}
}

// ReadByteWithTimeout 读取单字节或超时
func (this *Memory) ReadByteWithTimeout(timeout time.Duration) (byte, bool, error) {
	select {
	case c := <-this.ch:
		return c, true, nil
	default:
	}
	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case c := <-this.ch:
		return c, true, nil
	case <-t.C:
		return 0, false, nil
	case <-this.closed:
		select {
		case c := <-this.ch:
			return c, true, nil
		default:
			return 0, false, ErrReadClosed
		}
	}
}

// TryReadByte 尝试读取单字节,无数据返回false
func (this *Memory) TryReadByte() (byte, bool, error) {
	select {
	case c := <-this.ch:
		return c, true, nil
	default:
	}
	select {
	case <-this.closed:
		return 0, false, ErrReadClosed
	default:
		return 0, false, nil
	}
}

// Read 读取字节,实现io.Reader,至少阻塞读到1个字节
// 关闭且读空后返回io.EOF
func (this *Memory) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	c, err := this.ReadByte()
	if err != nil {
		return 0, io.EOF
	}
	p[0] = c
	n := 1
	for ; n < len(p); n++ {
		c, ok, err := this.TryReadByte()
		if err != nil || !ok {
			break
		}
		p[n] = c
	}
	return n, nil
}

//================================Other================================

// Len 当前缓存的字节数
func (this *Memory) Len() int {
	return len(this.ch)
}

// Cap 缓冲容量
func (this *Memory) Cap() int {
	return cap(this.ch)
}

// Closed 是否已关闭
func (this *Memory) Closed() bool {
	select {
	case <-this.closed:
		return true
	default:
		return false
	}
}

// Close 关闭,唤醒全部阻塞中的读写,可重复调用
func (this *Memory) Close() error {
	this.once.Do(func() { close(this.closed) })
	return nil
}

//================================Duplex================================

// Pair 新建一对交叉互联的全双工端点,模拟两台设备的串口对接
// a写入的数据从b读出,b写入的数据从a读出
func Pair(size int) (*Duplex, *Duplex) {
	a := NewMemory(size)
	b := NewMemory(size)
	return &Duplex{rx: a, tx: b}, &Duplex{rx: b, tx: a}
}

// Duplex 全双工端点,收发各一个Memory
type Duplex struct {
	rx *Memory //接收缓冲
	tx *Memory //发送缓冲
}

func (this *Duplex) WriteByte(c byte) error { return this.tx.WriteByte(c) }

func (this *Duplex) WriteByteWithTimeout(c byte, timeout time.Duration) (bool, error) {
	return this.tx.WriteByteWithTimeout(c, timeout)
}

func (this *Duplex) TryWriteByte(c byte) (bool, error) { return this.tx.TryWriteByte(c) }

func (this *Duplex) Write(p []byte) (int, error) { return this.tx.Write(p) }

func (this *Duplex) ReadByte() (byte, error) { return this.rx.ReadByte() }

func (this *Duplex) ReadByteWithTimeout(timeout time.Duration) (byte, bool, error) {
	return this.rx.ReadByteWithTimeout(timeout)
}

func (this *Duplex) TryReadByte() (byte, bool, error) { return this.rx.TryReadByte() }

func (this *Duplex) Read(p []byte) (int, error) { return this.rx.Read(p) }

// Close 两侧通道一起关闭
func (this *Duplex) Close() error {
	this.tx.Close()
	return this.rx.Close()
}
