// File: transport/usb/config.go
// Author: momentics <momentics@gmail.com>
//
// Frame geometry and device-node configuration for the USB link.

package usb

// Defaults match the FPGA packet engine: 2048-byte frames, 16 frames
// deep in each direction.
const (
	DefaultFrameSize = 2048
	DefaultNumFrames = 16
)

// Config describes one USB link endpoint.
type Config struct {
	// Path is the device node, e.g. /dev/usrp_b0.
	Path string `yaml:"path"`

	NumRecvFrames int `yaml:"num_recv_frames"`
	NumSendFrames int `yaml:"num_send_frames"`
	RecvFrameSize int `yaml:"recv_frame_size"`
	SendFrameSize int `yaml:"send_frame_size"`
}

// WithDefaults fills zero fields from the FPGA defaults.
func (c Config) WithDefaults() Config {
	if c.NumRecvFrames == 0 {
		c.NumRecvFrames = DefaultNumFrames
	}
	if c.NumSendFrames == 0 {
		c.NumSendFrames = DefaultNumFrames
	}
	if c.RecvFrameSize == 0 {
		c.RecvFrameSize = DefaultFrameSize
	}
	if c.SendFrameSize == 0 {
		c.SendFrameSize = DefaultFrameSize
	}
	return c
}
