package input

// Virtual key codes for keys that carry no printable character. Values
// follow the conventional console virtual-key assignments so records
// round-trip through downstream consumers unchanged.
const (
	VKBack   uint16 = 0x08
	VKTab    uint16 = 0x09
	VKReturn uint16 = 0x0D
	VKEscape uint16 = 0x1B
	VKSpace  uint16 = 0x20

	VKPrior  uint16 = 0x21 // page up
	VKNext   uint16 = 0x22 // page down
	VKEnd    uint16 = 0x23
	VKHome   uint16 = 0x24
	VKLeft   uint16 = 0x25
	VKUp     uint16 = 0x26
	VKRight  uint16 = 0x27
	VKDown   uint16 = 0x28
	VKInsert uint16 = 0x2D
	VKDelete uint16 = 0x2E

	VKF1  uint16 = 0x70
	VKF2  uint16 = 0x71
	VKF3  uint16 = 0x72
	VKF4  uint16 = 0x73
	VKF5  uint16 = 0x74
	VKF6  uint16 = 0x75
	VKF7  uint16 = 0x76
	VKF8  uint16 = 0x77
	VKF9  uint16 = 0x78
	VKF10 uint16 = 0x79
	VKF11 uint16 = 0x7A
	VKF12 uint16 = 0x7B
)
