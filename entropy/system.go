package entropy

import (
	"os"
	"runtime"
	"sort"

	"github.com/shirou/gopsutil/disk"
	"github.com/shirou/gopsutil/net"
	"github.com/shirou/gopsutil/process"
)

// gatherProcessMemory reads memory and scheduling statistics of the calling
// process.
func gatherProcessMemory() ([]byte, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, err
	}

	mem, err := proc.MemoryInfo()
	if err != nil {
		return nil, err
	}

	b := make([]byte, 0, 64)
	b = appendUint64(b, mem.RSS)
	b = appendUint64(b, mem.VMS)
	b = appendUint64(b, mem.Swap)

	// best effort extras
	if threads, err := proc.NumThreads(); err == nil {
		b = appendInt64(b, int64(threads))
	}
	if times, err := proc.Times(); err == nil {
		b = appendUint64(b, uint64(times.User*1e6))
		b = appendUint64(b, uint64(times.System*1e6))
	}
	return b, nil
}

func diskRoot() string {
	if runtime.GOOS == "windows" {
		return "C:\\"
	}
	return "/"
}

// gatherDisk reads free space counters of the root volume.
func gatherDisk() ([]byte, error) {
	usage, err := disk.Usage(diskRoot())
	if err != nil {
		return nil, err
	}

	b := make([]byte, 0, 48)
	b = appendUint64(b, usage.Total)
	b = appendUint64(b, usage.Free)
	b = appendUint64(b, usage.Used)
	b = appendUint64(b, usage.InodesFree)
	return b, nil
}

// gatherNetwork reads per-interface traffic counters and, where the platform
// supports it, TCP protocol counters.
func gatherNetwork() ([]byte, error) {
	counters, err := net.IOCounters(true)
	if err != nil {
		return nil, err
	}

	b := make([]byte, 0, len(counters)*64)
	for _, c := range counters {
		b = append(b, []byte(c.Name)...)
		b = appendUint64(b, c.BytesSent)
		b = appendUint64(b, c.BytesRecv)
		b = appendUint64(b, c.PacketsSent)
		b = appendUint64(b, c.PacketsRecv)
		b = appendUint64(b, c.Errin)
		b = appendUint64(b, c.Errout)
	}

	// TCP statistics are not available on all platforms, skip silently.
	if protos, err := net.ProtoCounters([]string{"tcp"}); err == nil {
		for _, p := range protos {
			keys := make([]string, 0, len(p.Stats))
			for k := range p.Stats {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				b = appendInt64(b, p.Stats[k])
			}
		}
	}
	return b, nil
}
