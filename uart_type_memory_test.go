package uart

import (
	"bytes"
	"io"
	"testing"
	"time"
)

// TestMemoryRoundTrip 写进去的数据原样按序读回
func TestMemoryRoundTrip(t *testing.T) {
	data := []byte("hello uart")
	m := NewMemory(len(data))
	if n, err := WriteBytes(m, data); err != nil || n != len(data) {
		t.Fatal(n, err)
	}
	buf := make([]byte, len(data))
	if n, err := ReadBytes(m, buf); err != nil || n != len(buf) {
		t.Fatal(n, err)
	}
	if !bytes.Equal(buf, data) {
		t.Error("数据错误:", string(buf))
	}
}

// TestMemoryNoError 端口未关闭时任何操作都不会出错
func TestMemoryNoError(t *testing.T) {
	m := NewMemory(256)
	for i := 0; i < 256; i++ {
		ok, err := m.TryWriteByte(byte(i))
		if !ok || err != nil {
			t.Fatal(i, ok, err)
		}
	}
	//缓冲满,尝试写返回false但仍然无错误
	ok, err := m.TryWriteByte(0)
	if ok || err != nil {
		t.Fatal(ok, err)
	}
	for i := 0; i < 256; i++ {
		c, ok, err := m.TryReadByte()
		if !ok || err != nil || c != byte(i) {
			t.Fatal(i, c, ok, err)
		}
	}
	//缓冲空,尝试读返回false但仍然无错误
	if _, ok, err := m.TryReadByte(); ok || err != nil {
		t.Fatal(ok, err)
	}
}

func TestMemoryTimeout(t *testing.T) {
	m := NewMemory(4)

	//缓冲满后限时写超时,进度计数4
	data := []byte("12345678")
	n, err := WriteBytesWithTimeout(m, data, time.Millisecond*20)
	if err != nil {
		t.Error(err)
	}
	if n != 4 {
		t.Error("进度计数错误:", n)
	}

	//读完已有数据后限时读超时
	buf := make([]byte, 8)
	n, err = ReadBytesWithTimeout(m, buf, time.Millisecond*20)
	if err != nil {
		t.Error(err)
	}
	if n != 4 {
		t.Error("进度计数错误:", n)
	}
	if !bytes.Equal(buf[:n], data[:4]) {
		t.Error("数据错误:", buf[:n])
	}
}

func TestMemoryClose(t *testing.T) {
	m := NewMemory(4)
	m.WriteByte('a')
	m.WriteByte('b')
	m.Close()
	m.Close() //可重复关闭

	if err := m.WriteByte('c'); err != ErrWriteClosed {
		t.Error("关闭后写入应该报错:", err)
	}
	if ok, err := m.TryWriteByte('c'); ok || err != ErrWriteClosed {
		t.Error(ok, err)
	}

	//关闭后允许读完残留数据
	for _, want := range []byte("ab") {
		c, err := m.ReadByte()
		if err != nil || c != want {
			t.Error(c, err)
		}
	}
	if _, err := m.ReadByte(); err != ErrReadClosed {
		t.Error("读空后应该报错:", err)
	}

	//io.Reader语义,读空后EOF
	if _, err := m.Read(make([]byte, 1)); err != io.EOF {
		t.Error(err)
	}
}

// TestMemoryCloseWake 关闭唤醒阻塞中的读写
func TestMemoryCloseWake(t *testing.T) {
	m := NewMemory(1)
	done := make(chan error, 1)
	go func() {
		_, err := m.ReadByte() //无数据,阻塞
		done <- err
	}()
	time.Sleep(time.Millisecond * 20)
	m.Close()
	select {
	case err := <-done:
		if err != ErrReadClosed {
			t.Error(err)
		}
	case <-time.After(time.Second):
		t.Error("关闭没有唤醒阻塞的读")
	}
}

// TestMemoryShared 并发调用,总量和内容不丢不重
func TestMemoryShared(t *testing.T) {
	m := NewMemory(8)
	data := []byte("0123456789abcdefghijklmnopqrstuv")
	go func() {
		half := len(data) / 2
		WriteBytes(m, data[:half])
	}()
	go func() {
		half := len(data) / 2
		WriteBytes(m, data[half:])
	}()
	got := make([]byte, len(data))
	if n, err := ReadBytes(m, got); err != nil || n != len(got) {
		t.Fatal(n, err)
	}
	//并发写只保证不丢不重,不保证两个写入方之间的顺序
	count := map[byte]int{}
	for _, c := range got {
		count[c]++
	}
	for _, c := range data {
		if count[c] != 1 {
			t.Error("字节丢失或重复:", string(c), count[c])
		}
	}
}

// TestPair 成对端点交叉互联
func TestPair(t *testing.T) {
	a, b := Pair(16)
	defer a.Close()
	defer b.Close()

	if n, err := WriteBytes(a, []byte("ping")); err != nil || n != 4 {
		t.Fatal(n, err)
	}
	buf := make([]byte, 4)
	if n, err := ReadBytes(b, buf); err != nil || n != 4 {
		t.Fatal(n, err)
	}
	if string(buf) != "ping" {
		t.Error("数据错误:", string(buf))
	}

	if n, err := WriteBytes(b, []byte("pong")); err != nil || n != 4 {
		t.Fatal(n, err)
	}
	if n, err := ReadBytes(a, buf); err != nil || n != 4 {
		t.Fatal(n, err)
	}
	if string(buf) != "pong" {
		t.Error("数据错误:", string(buf))
	}
}
