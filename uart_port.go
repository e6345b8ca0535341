package uart

import (
	"io"
	"sync"
	"time"
)

var (
	_ SharedByteWriter        = (*Port)(nil)
	_ SharedTimeoutByteWriter = (*Port)(nil)
	_ SharedTryByteWriter     = (*Port)(nil)
	_ SharedByteReader        = (*Port)(nil)
	_ SharedTimeoutByteReader = (*Port)(nil)
	_ SharedTryByteReader     = (*Port)(nil)
	_ BytesWriter             = (*Port)(nil)
	_ TimeoutBytesWriter      = (*Port)(nil)
	_ TryBytesWriter          = (*Port)(nil)
	_ io.ReadWriteCloser      = (*Port)(nil)
)

// DialFunc 连接函数
type DialFunc func() (io.ReadWriteCloser, error)

// NewDial 建立连接并包装成端口
func NewDial(dial DialFunc, options ...Option) (*Port, error) {
	rwc, err := dial()
	if err != nil {
		return nil, err
	}
	return NewPort(rwc, options...), nil
}

// NewPort 包装任意io.ReadWriteCloser(串口,网络连接,ssh会话...),
// 补齐流式连接缺少的单字节原语
// 内部各起一个收发协程,通道的占用情况提供限时和尝试系列的语义:
// 发送缓冲满即tx通道满,接收无数据即rx通道空
// 通道天然并发安全,共享系列的接口全部满足
func NewPort(rwc io.ReadWriteCloser, options ...Option) *Port {
	p := &Port{
		rwc:    rwc,
		size:   DefaultBufferSize,
		closed: make(chan struct{}),
		rxDone: make(chan struct{}),
		txDone: make(chan struct{}),
		logger: defaultLogger(),
	}
	for _, v := range options {
		v(p)
	}
	p.rx = make(chan byte, p.size)
	p.tx = make(chan byte, p.size)
	go p.runRead()
	go p.runWrite()
	return p
}

// Port 端口,任意io.ReadWriteCloser加上单字节原语
type Port struct {
	mu     sync.RWMutex       //保护key,收发协程运行期间可能被修改
	key    string             //标识,打印用
	rwc    io.ReadWriteCloser //底层连接
	size   int                //收发缓冲大小
	rx     chan byte          //接收缓冲
	tx     chan byte          //发送缓冲
	rxErr  error              //接收错误,rxDone关闭前写入
	txErr  error              //发送错误,txDone关闭前写入
	rxDone chan struct{}      //接收协程退出信号
	txDone chan struct{}      //发送协程退出信号
	closed chan struct{}      //关闭信号
	once   sync.Once
	logger *logger
}

//================================Option================================

type Option func(p *Port)

// WithBufferSize 设置收发缓冲大小
func WithBufferSize(size int) Option {
	return func(p *Port) {
		if size > 0 {
			p.size = size
		}
	}
}

// WithKey 设置标识
func WithKey(key string) Option {
	return func(p *Port) { p.key = key }
}

// WithDebug 设置调试打印
func WithDebug(b ...bool) Option {
	return func(p *Port) { p.logger.Debug(b...) }
}

// WithLogger 设置日志输出
func WithLogger(l Logger) Option {
	return func(p *Port) { p.logger = newLogger(l) }
}

//================================Run================================

// runRead 接收协程,从底层连接搬运数据到rx通道
// 出错后记录错误并退出,rx中的残留数据仍可读完
func (this *Port) runRead() {
	defer close(this.rxDone)
	buf := make([]byte, this.size)
	for {
		n, err := this.rwc.Read(buf)
		if n > 0 {
			this.logger.Readln("["+this.Key()+"] ", buf[:n])
			for _, c := range buf[:n] {
				select {
				case this.rx <- c:
				case <-this.closed:
					this.rxErr = ErrReadClosed
					return
				}
			}
		}
		if err != nil {
			this.rxErr = dealErr(err)
			return
		}
	}
}

// runWrite 发送协程,把tx通道中的数据搬运到底层连接
// 一次尽量多攒一些字节合并写出,字节顺序不变
func (this *Port) runWrite() {
	defer close(this.txDone)
	buf := make([]byte, 0, this.size)
	for {
		select {
		case c := <-this.tx:
			buf = append(buf[:0], c)
		Fill:
			for len(buf) < cap(buf) {
				select {
				case c := <-this.tx:
					buf = append(buf, c)
				default:
					break Fill
				}
			}
			this.logger.Writeln("["+this.Key()+"] ", buf)
			if _, err := this.rwc.Write(buf); err != nil {
				this.txErr = dealErr(err)
				return
			}
		case <-this.closed:
			this.txErr = ErrWriteClosed
			return
		}
	}
}

//================================Write================================

// WriteByte 写入单字节,发送缓冲满则阻塞
// 返回nil表示字节已进入发送缓冲,不代表已经从线上发出
func (this *Port) WriteByte(c byte) error {
	select {
	case <-this.txDone:
		return this.writeErr()
	case <-this.closed:
		return ErrWriteClosed
	default:
	}
	select {
	case this.tx <- c:
		return nil
	case <-this.txDone:
		return this.writeErr()
	case <-this.closed:
		return ErrWriteClosed
	}
}

// WriteByteWithTimeout 写入单字节或超时
func (this *Port) WriteByteWithTimeout(c byte, timeout time.Duration) (bool, error) {
	select {
	case <-this.txDone:
		return false, this.writeErr()
	case <-this.closed:
		return false, ErrWriteClosed
	default:
	}
	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case this.tx <- c:
		return true, nil
	case <-t.C:
		return false, nil
	case <-this.txDone:
		return false, this.writeErr()
	case <-this.closed:
		return false, ErrWriteClosed
	}
}

// TryWriteByte 尝试写入单字节,发送缓冲满返回false
func (this *Port) TryWriteByte(c byte) (bool, error) {
	select {
	case <-this.txDone:
		return false, this.writeErr()
	case <-this.closed:
		return false, ErrWriteClosed
	default:
	}
	select {
	case this.tx <- c:
		return true, nil
	default:
		return false, nil
	}
}

// WriteBytes 批量写入,实现BytesWriter,进度计数规则同WriteBytes函数
func (this *Port) WriteBytes(p []byte) (int, error) {
	for i, c := range p {
		if err := this.WriteByte(c); err != nil {
			return i, err
		}
	}
	return len(p), nil
}

// Write 写入字节,实现io.Writer
func (this *Port) Write(p []byte) (int, error) {
	return this.WriteBytes(p)
}

func (this *Port) writeErr() error {
	if this.txErr != nil {
		return this.txErr
	}
	return ErrWriteClosed
}

//================================Read================================

// ReadByte 读取单字节,无数据则阻塞
// 底层连接断开后允许读完残留数据,读空返回记录的错误
func (this *Port) ReadByte() (byte, error) {
	select {
	case c := <-this.rx:
		return c, nil
	default:
	}
	select {
	case c := <-this.rx:
		return c, nil
	case <-this.rxDone:
		select {
		case c := <-this.rx:
			return c, nil
		default:
			return 0, this.readErr()
		}
	case <-this.closed:
		return 0, ErrReadClosed
	}
}

// ReadByteWithTimeout 读取单字节或超时
func (this *Port) ReadByteWithTimeout(timeout time.Duration) (byte, bool, error) {
	select {
	case c := <-this.rx:
		return c, true, nil
	default:
	}
	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case c := <-this.rx:
		return c, true, nil
	case <-t.C:
		return 0, false, nil
	case <-this.rxDone:
		select {
		case c := <-this.rx:
			return c, true, nil
		default:
			return 0, false, this.readErr()
		}
	case <-this.closed:
		return 0, false, ErrReadClosed
	}
}

// TryReadByte 尝试读取单字节,无数据返回false
func (this *Port) TryReadByte() (byte, bool, error) {
	select {
	case c := <-this.rx:
		return c, true, nil
	default:
	}
	select {
	case <-this.rxDone:
		select {
		case c := <-this.rx:
			return c, true, nil
		default:
			return 0, false, this.readErr()
		}
	case <-this.closed:
		return 0, false, ErrReadClosed
	default:
		return 0, false, nil
	}
}

// Read 读取字节,实现io.Reader,至少阻塞读到1个字节
func (this *Port) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	c, err := this.ReadByte()
	if err != nil {
		return 0, err
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

func (this *Port) readErr() error {
	if this.rxErr != nil {
		return this.rxErr
	}
	return ErrReadClosed
}

//================================Other================================

// Key 标识
func (this *Port) Key() string {
	this.mu.RLock()
	defer this.mu.RUnlock()
	return this.key
}

// SetKey 设置标识
func (this *Port) SetKey(key string) *Port {
	this.mu.Lock()
	defer this.mu.Unlock()
	this.key = key
	return this
}

// Debug 是否打印调试信息
func (this *Port) Debug(b ...bool) {
	this.logger.Debug(b...)
}

// SetPrintWithHEX 打印16进制
func (this *Port) SetPrintWithHEX() {
	this.logger.SetPrintWithHEX()
}

// SetPrintWithASCII 打印ascii
func (this *Port) SetPrintWithASCII() {
	this.logger.SetPrintWithASCII()
}

// Closed 是否已关闭
func (this *Port) Closed() bool {
	select {
	case <-this.closed:
		return true
	default:
		return false
	}
}

// Close 关闭端口和底层连接,可重复调用
func (this *Port) Close() (err error) {
	this.once.Do(func() {
		close(this.closed)
		err = this.rwc.Close()
	})
	return
}
