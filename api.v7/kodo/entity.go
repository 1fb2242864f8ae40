package kodo

type FileType uint32

const (
	TypeNormal FileType = iota
	TypeLine
	TypeArchive
)

// FileInfo 文件元信息，stat 接口以及批量 stat 的返回值
type FileInfo struct {
	Hash     string   `json:"hash"`
	Fsize    int64    `json:"fsize"`
	PutTime  int64    `json:"putTime"`
	MimeType string   `json:"mimeType"`
	EndUser  string   `json:"endUser"`
	Type     FileType `json:"type"`
}

type ListItem struct {
	Key      string   `json:"key"`
	Hash     string   `json:"hash"`
	Fsize    int64    `json:"fsize"`
	PutTime  int64    `json:"putTime"`
	MimeType string   `json:"mimeType"`
	EndUser  string   `json:"endUser"`
	Type     FileType `json:"type"`
}

// ListResult 一次列举请求的结果，Marker 为空表示列举已经结束
type ListResult struct {
	Items          []ListItem `json:"items"`
	CommonPrefixes []string   `json:"commonPrefixes"`
	Marker         string     `json:"marker"`
}

type BatchOpData struct {
	FileInfo
	Error string `json:"error,omitempty"`
}

// BatchOpRet 批量操作中单个操作的结果，顺序与提交顺序一致
type BatchOpRet struct {
	Code int         `json:"code"`
	Data BatchOpData `json:"data"`
}
