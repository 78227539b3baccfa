package models

// PerformanceValue wraps the GetPerformance value
type PerformanceValue struct {
	Performance Performance `json:"Performance"`
}

type Performance struct {
	CodecRate     int `json:"codecRate"`     // kbps
	CPUUsed       int `json:"cpuUsed"`       // percent
	NetThroughput int `json:"netThroughput"` // kbps
}

// DevInfoValue wraps the GetDevInfo value
type DevInfoValue struct {
	DevInfo DevInfo `json:"DevInfo"`
}

// DevInfo is the device metadata block. JSON keys follow the firmware.
type DevInfo struct {
	B485         int    `json:"B485"`
	IOInputNum   int    `json:"IOInputNum"`
	IOOutputNum  int    `json:"IOOutputNum"`
	AudioNum     int    `json:"audioNum"`
	BuildDay     string `json:"buildDay"`
	CfgVer       string `json:"cfgVer"`
	ChannelNum   int    `json:"channelNum"`
	Detail       string `json:"detail"`
	DiskNum      int    `json:"diskNum"`
	ExactType    string `json:"exactType"`
	FirmVer      string `json:"firmVer"`
	FrameworkVer int    `json:"frameworkVer"`
	HardVer      string `json:"hardVer"`
	Model        string `json:"model"`
	Name         string `json:"name"`
	PakSuffix    string `json:"pakSuffix"`
	Serial       string `json:"serial"`
	Type         string `json:"type"`
	Wifi         int    `json:"wifi"`
}

// Ack is the value returned by Reboot and SetTime
type Ack struct {
	RspCode int `json:"rspCode"`
}
