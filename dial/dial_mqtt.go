package dial

import (
	"errors"
	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/injoyai/uart"
	"io"
)

//================================MQTT================================

type MQTTConfig = mqtt.ClientOptions

// NewMQTTOptions 新建默认配置信息
func NewMQTTOptions() *mqtt.ClientOptions {
	return mqtt.NewClientOptions()
}

// MQTT 通过一对主题收发数据(桥接到远端串口网关)
func MQTT(subscribe, publish string, qos byte, cfg *MQTTConfig) (io.ReadWriteCloser, error) {
	if cfg == nil {
		cfg = NewMQTTOptions()
	}
	c := mqtt.NewClient(cfg)
	token := c.Connect()
	if !token.WaitTimeout(cfg.ConnectTimeout) {
		return nil, errors.New("连接超时")
	}
	if token.Error() != nil {
		return nil, token.Error()
	}
	r := &MQTTClient{
		Client:    c,
		subscribe: subscribe,
		publish:   publish,
		qos:       qos,
		ch:        make(chan mqtt.Message, 1000),
		done:      make(chan struct{}),
	}
	token = c.Subscribe(subscribe, qos, func(client mqtt.Client, message mqtt.Message) {
		select {
		case r.ch <- message:
		case <-r.done:
		}
	})
	token.Wait()
	return r, token.Error()
}

// WithMQTT 连接函数
func WithMQTT(subscribe, publish string, qos byte, cfg *MQTTConfig) uart.DialFunc {
	return func() (io.ReadWriteCloser, error) { return MQTT(subscribe, publish, qos, cfg) }
}

// NewMQTT 连接MQTT并包装成端口
func NewMQTT(subscribe, publish string, qos byte, cfg *MQTTConfig, options ...uart.Option) (*uart.Port, error) {
	options = append([]uart.Option{uart.WithKey(publish)}, options...)
	return uart.NewDial(WithMQTT(subscribe, publish, qos, cfg), options...)
}

// MQTTClient 把主题消息整理成字节流
type MQTTClient struct {
	mqtt.Client
	subscribe string
	publish   string
	qos       byte
	ch        chan mqtt.Message
	leftover  []byte        //上条消息的剩余数据
	done      chan struct{} //关闭信号
}

func (this *MQTTClient) Read(p []byte) (int, error) {
	for len(this.leftover) == 0 {
		select {
		case msg := <-this.ch:
			this.leftover = msg.Payload()
			msg.Ack()
		case <-this.done:
			return 0, io.EOF
		}
	}
	n := copy(p, this.leftover)
	this.leftover = this.leftover[n:]
	return n, nil
}

func (this *MQTTClient) Write(p []byte) (int, error) {
	token := this.Client.Publish(this.publish, this.qos, false, p)
	token.Wait()
	if token.Error() != nil {
		return 0, token.Error()
	}
	return len(p), nil
}

func (this *MQTTClient) Close() error {
	select {
	case <-this.done:
		return nil
	default:
	}
	close(this.done)
	token := this.Client.Unsubscribe(this.subscribe)
	token.Wait()
	this.Client.Disconnect(100)
	return token.Error()
}
