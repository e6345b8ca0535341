package uart

import (
	"time"
)

/*
多字节操作的默认实现,由单字节原语逐字节推导
进度计数规则:
1. 计数只包含完整传输的字节,失败或超时的那个字节不计入
2. 任意一个字节失败或超时后立即停止,不再触碰后续字节
3. 错误原样透传,不解析内容,携带失败前的进度计数
实现了对应批量接口的类型走批量路径,语义必须一致
*/

//================================Write================================

// WriteBytes 按顺序逐字节阻塞写入全部数据
// 返回(len(p),nil)表示全部写入
// 第k个字节出错时返回(k-1,err),后续字节不再尝试
func WriteBytes(w ByteWriter, p []byte) (int, error) {
	if bw, ok := w.(BytesWriter); ok {
		return bw.WriteBytes(p)
	}
	for i, c := range p {
		if err := w.WriteByte(c); err != nil {
			return i, err
		}
	}
	return len(p), nil
}

// WriteBytesWithTimeout 按顺序逐字节限时写入,超时独立作用于每个字节,
// 不是整体的截止时间
// 返回(len(p),nil)表示全部写入
// 返回(n<len(p),nil)表示第n+1个字节超时
// 返回(n,err)表示第n+1个字节出错
func WriteBytesWithTimeout(w TimeoutByteWriter, p []byte, timeout time.Duration) (int, error) {
	if bw, ok := w.(TimeoutBytesWriter); ok {
		return bw.WriteBytesWithTimeout(p, timeout)
	}
	for i, c := range p {
		ok, err := w.WriteByteWithTimeout(c, timeout)
		if err != nil {
			return i, err
		}
		if !ok {
			return i, nil
		}
	}
	return len(p), nil
}

// TryWriteBytes 按顺序尝试写入,碰到缓冲满立即停止,永不阻塞
// 返回(n<len(p),nil)表示缓冲满,调用方记录进度,下次从p[n:]继续
func TryWriteBytes(w TryByteWriter, p []byte) (int, error) {
	if bw, ok := w.(TryBytesWriter); ok {
		return bw.TryWriteBytes(p)
	}
	for i, c := range p {
		ok, err := w.TryWriteByte(c)
		if err != nil {
			return i, err
		}
		if !ok {
			return i, nil
		}
	}
	return len(p), nil
}

//================================Read================================

// ReadBytes 从前往后阻塞读取,直到填满buf
// 返回(len(buf),nil)表示填满
// 第k个字节出错时返回(k-1,err),buf前k-1个字节有效
func ReadBytes(r ByteReader, buf []byte) (int, error) {
	if br, ok := r.(BytesReader); ok {
		return br.ReadBytes(buf)
	}
	for i := range buf {
		c, err := r.ReadByte()
		if err != nil {
			return i, err
		}
		buf[i] = c
	}
	return len(buf), nil
}

// ReadBytesWithTimeout 从前往后限时读取,超时独立作用于每个字节
// 返回(n<len(buf),nil)表示第n+1个字节等待超时
func ReadBytesWithTimeout(r TimeoutByteReader, buf []byte, timeout time.Duration) (int, error) {
	if br, ok := r.(TimeoutBytesReader); ok {
		return br.ReadBytesWithTimeout(buf, timeout)
	}
	for i := range buf {
		c, ok, err := r.ReadByteWithTimeout(timeout)
		if err != nil {
			return i, err
		}
		if !ok {
			return i, nil
		}
		buf[i] = c
	}
	return len(buf), nil
}

// TryReadBytes 读取当前已有的数据,读空立即停止,永不阻塞
// 返回(n<len(buf),nil)表示数据暂时读完,调用方下次从buf[n:]继续
func TryReadBytes(r TryByteReader, buf []byte) (int, error) {
	if br, ok := r.(TryBytesReader); ok {
		return br.TryReadBytes(buf)
	}
	for i := range buf {
		c, ok, err := r.TryReadByte()
		if err != nil {
			return i, err
		}
		if !ok {
			return i, nil
		}
		buf[i] = c
	}
	return len(buf), nil
}
