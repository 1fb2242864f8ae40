package kodo

import (
	"encoding/base64"
	"strconv"
)

// EncodeString 对 s 做 URL 安全的 base64 编码（保留填充符 '='）
func EncodeString(s string) string {
	return base64.URLEncoding.EncodeToString([]byte(s))
}

// EncodedEntry 生成 bucket:key 形式的资源标识并编码，用于管理接口的请求路径。
// key 中的 ':' 不做转义，由服务端解析。
func EncodedEntry(bucket, key string) string {
	return EncodeString(bucket + ":" + key)
}

// EncodedEntryWithoutKey 生成只包含 bucket 的资源标识并编码
func EncodedEntryWithoutKey(bucket string) string {
	return EncodeString(bucket)
}

// 以下函数生成不带前导 '/' 的操作串，既用于单个请求的路径，也用于批量请求的 op 参数

func opStat(bucket, key string) string {
	return "stat/" + EncodedEntry(bucket, key)
}

func opDelete(bucket, key string) string {
	return "delete/" + EncodedEntry(bucket, key)
}

func opCopy(bucketSrc, keySrc, bucketDest, keyDest string) string {
	return "copy/" + EncodedEntry(bucketSrc, keySrc) + "/" + EncodedEntry(bucketDest, keyDest)
}

func opMove(bucketSrc, keySrc, bucketDest, keyDest string) string {
	return "move/" + EncodedEntry(bucketSrc, keySrc) + "/" + EncodedEntry(bucketDest, keyDest)
}

func opChangeMime(bucket, key, mime string) string {
	return "chgm/" + EncodedEntry(bucket, key) + "/mime/" + EncodeString(mime)
}

func opChangeType(bucket, key string, fileType FileType) string {
	return "chtype/" + EncodedEntry(bucket, key) + "/type/" + strconv.FormatUint(uint64(fileType), 10)
}

func uriFetch(url, encodedEntry string) string {
	return "/fetch/" + EncodeString(url) + "/to/" + encodedEntry
}

func uriPrefetch(bucket, key string) string {
	return "/prefetch/" + EncodedEntry(bucket, key)
}
