package uart

import "time"

const (
	B  = 1        //1B
	KB = 1024 * B //1KB

	DefaultBufferSize = KB          //默认收发缓冲大小
	DefaultTimeout    = time.Second //默认单字节超时
	DefaultBaudRate   = 115200      //默认波特率
)
