package transcoder

import "sync"

const (
	// Pool limits to prevent memory bloat
	poolMaxArgs  = 64
	poolInitArgs = 8
)

// core argument buffer pool
var argsPool = sync.Pool{
	New: func() any {
		buf := make([]uint64, 0, poolInitArgs)
		return &buf
	},
}

// GetArgs returns an empty argument buffer from the pool.
func GetArgs() *[]uint64 {
	return argsPool.Get().(*[]uint64)
}

// PutArgs returns buf to the pool.
func PutArgs(buf *[]uint64) {
	if buf == nil || cap(*buf) > poolMaxArgs {
		return // reject oversized
	}
	*buf = (*buf)[:0]
	argsPool.Put(buf)
}
