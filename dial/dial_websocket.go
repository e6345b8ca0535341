package dial

import (
	"github.com/gorilla/websocket"
	"github.com/injoyai/uart"
	"io"
	"net/http"
)

//================================Websocket================================

// Websocket 连接websocket串口控制台
func Websocket(url string, header http.Header) (io.ReadWriteCloser, error) {
	c, _, err := websocket.DefaultDialer.Dial(url, header)
	if err != nil {
		return nil, err
	}
	return &WebsocketClient{Conn: c}, nil
}

// WithWebsocket 连接函数
func WithWebsocket(url string, header http.Header) uart.DialFunc {
	return func() (io.ReadWriteCloser, error) { return Websocket(url, header) }
}

// NewWebsocket 连接websocket并包装成端口
func NewWebsocket(url string, header http.Header, options ...uart.Option) (*uart.Port, error) {
	options = append([]uart.Option{uart.WithKey(url)}, options...)
	return uart.NewDial(WithWebsocket(url, header), options...)
}

// WebsocketClient 把消息流整理成字节流
// 读取时一条消息拆成字节,读不完的留到下次
type WebsocketClient struct {
	*websocket.Conn
	leftover []byte //上条消息的剩余数据
}

func (this *WebsocketClient) Read(p []byte) (int, error) {
	for len(this.leftover) == 0 {
		_, data, err := this.Conn.ReadMessage()
		if err != nil {
			return 0, err
		}
		this.leftover = data
	}
	n := copy(p, this.leftover)
	this.leftover = this.leftover[n:]
	return n, nil
}

func (this *WebsocketClient) Write(p []byte) (int, error) {
	if err := this.Conn.WriteMessage(websocket.BinaryMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (this *WebsocketClient) Close() error {
	return this.Conn.Close()
}
