package uart

import (
	"bytes"
	"errors"
	"testing"
	"time"
)

// TestPortRoundTrip 通过端口收发,对端原样读回
func TestPortRoundTrip(t *testing.T) {
	a, b := Pair(64)
	p := NewPort(a, WithKey("test"))
	defer p.Close()

	data := []byte("hello uart")
	if n, err := WriteBytes(p, data); err != nil || n != len(data) {
		t.Fatal(n, err)
	}
	buf := make([]byte, len(data))
	if n, err := ReadBytes(b, buf); err != nil || n != len(buf) {
		t.Fatal(n, err)
	}
	if !bytes.Equal(buf, data) {
		t.Error("数据错误:", string(buf))
	}

	//反向
	if n, err := WriteBytes(b, []byte("666")); err != nil || n != 3 {
		t.Fatal(n, err)
	}
	buf = make([]byte, 3)
	if n, err := ReadBytes(p, buf); err != nil || n != 3 {
		t.Fatal(n, err)
	}
	if string(buf) != "666" {
		t.Error("数据错误:", string(buf))
	}
}

func TestPortTimeout(t *testing.T) {
	a, _ := Pair(64)
	p := NewPort(a)
	defer p.Close()

	//对端没有数据,限时读超时
	start := time.Now()
	_, ok, err := p.ReadByteWithTimeout(time.Millisecond * 50)
	if ok || err != nil {
		t.Error(ok, err)
	}
	if time.Since(start) < time.Millisecond*50 {
		t.Error("超时提前返回")
	}

	//尝试读立即返回
	if _, ok, err := p.TryReadByte(); ok || err != nil {
		t.Error(ok, err)
	}
}

// errRWC 读出固定数据后出错,写入直接出错
type errRWC struct {
	data []byte
	err  error
}

func (this *errRWC) Read(p []byte) (int, error) {
	if len(this.data) == 0 {
		return 0, this.err
	}
	n := copy(p, this.data)
	this.data = this.data[n:]
	return n, nil
}

func (this *errRWC) Write(p []byte) (int, error) {
	return 0, this.err
}

func (this *errRWC) Close() error { return nil }

// TestPortReadError 底层出错后先读完残留数据,再返回记录的错误
func TestPortReadError(t *testing.T) {
	errHW := errors.New("硬件错误")
	p := NewPort(&errRWC{data: []byte("abc"), err: errHW})
	defer p.Close()

	buf := make([]byte, 8)
	n, err := ReadBytes(p, buf)
	if err != errHW {
		t.Error("错误应该原样透传:", err)
	}
	if n != 3 {
		t.Error("进度计数错误:", n)
	}
	if !bytes.Equal(buf[:n], []byte("abc")) {
		t.Error("数据错误:", buf[:n])
	}
}

// TestPortWriteError 发送协程出错后,后续写入返回记录的错误
func TestPortWriteError(t *testing.T) {
	errHW := errors.New("硬件错误")
	p := NewPort(&errRWC{err: errHW}, WithBufferSize(1))
	defer p.Close()

	//第一个字节进入发送缓冲,发送协程写底层时出错
	if err := p.WriteByte('a'); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond * 100)
	if err := p.WriteByte('b'); err != errHW {
		t.Error("错误应该原样透传:", err)
	}
	if ok, err := p.TryWriteByte('c'); ok || err != errHW {
		t.Error(ok, err)
	}
}

// TestPortSetKeyLive 收发协程运行期间修改标识和打印开关
func TestPortSetKeyLive(t *testing.T) {
	a, b := Pair(64)
	p := NewPort(a, WithKey("old"))
	defer p.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			if _, err := WriteBytes(b, bytes.Repeat([]byte{'x'}, 10)); err != nil {
				t.Error(err)
				return
			}
		}
	}()

	//接收过程中修改端口状态
	p.SetKey("COM3")
	p.Debug(false)
	p.SetPrintWithASCII()

	buf := make([]byte, 1000)
	if n, err := ReadBytes(p, buf); err != nil || n != len(buf) {
		t.Fatal(n, err)
	}
	<-done
	if p.Key() != "COM3" {
		t.Error("标识错误:", p.Key())
	}
	for _, c := range buf {
		if c != 'x' {
			t.Fatal("数据错误:", c)
		}
	}
}

// TestPortTryReadResidual 底层出错后,尝试读先读完残留数据再返回记录的错误
func TestPortTryReadResidual(t *testing.T) {
	errHW := errors.New("硬件错误")
	p := NewPort(&errRWC{data: []byte("ab"), err: errHW})
	defer p.Close()

	time.Sleep(time.Millisecond * 100)
	if c, ok, err := p.TryReadByte(); !ok || err != nil || c != 'a' {
		t.Fatal(c, ok, err)
	}
	if c, ok, err := p.TryReadByte(); !ok || err != nil || c != 'b' {
		t.Fatal(c, ok, err)
	}
	if _, ok, err := p.TryReadByte(); ok || err != errHW {
		t.Error("错误应该原样透传:", ok, err)
	}
}

// TestPortClose 关闭后读写报错,可重复关闭
func TestPortClose(t *testing.T) {
	a, _ := Pair(16)
	p := NewPort(a)
	p.Close()
	p.Close()

	if !p.Closed() {
		t.Error("应该已关闭")
	}
	if err := p.WriteByte('a'); err == nil {
		t.Error("关闭后写入应该报错")
	}
	if ok, err := p.TryWriteByte('a'); ok || err == nil {
		t.Error(ok, err)
	}
}

// TestPortWriter 写入辅助方法
func TestPortWriter(t *testing.T) {
	a, b := Pair(64)
	p := NewPort(a)
	defer p.Close()

	if _, err := p.WriteString("abc"); err != nil {
		t.Error(err)
	}
	if _, err := p.WriteHEX("414243"); err != nil {
		t.Error(err)
	}
	if _, err := p.WriteBase64("REVG"); err != nil {
		t.Error(err)
	}
	if _, err := p.WriteAny([]byte("123")); err != nil {
		t.Error(err)
	}

	want := []byte("abcABCDEF123")
	buf := make([]byte, len(want))
	if n, err := ReadBytes(b, buf); err != nil || n != len(buf) {
		t.Fatal(n, err)
	}
	if !bytes.Equal(buf, want) {
		t.Error("数据错误:", string(buf))
	}
}
