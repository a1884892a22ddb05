package bench

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/utkarsh5026/devbench/cpu/crypto"
	"github.com/utkarsh5026/devbench/cpu/matmul"
	"github.com/utkarsh5026/devbench/cpu/mergesort"
	ramaccess "github.com/utkarsh5026/devbench/ram/access"
	"github.com/utkarsh5026/devbench/ram/alloc"
	"github.com/utkarsh5026/devbench/report"
	storageaccess "github.com/utkarsh5026/devbench/storage/access"
)

// CPUConfig configures the three compute families.
type CPUConfig struct {
	Crypto crypto.Config
	Math   matmul.Config
	Sort   mergesort.Config
}

// CPUReport holds the throughput of the three compute families.
type CPUReport struct {
	Crypto report.Throughput
	Math   report.Throughput
	Sort   report.Throughput
}

func (r CPUReport) String() string {
	return strings.Join([]string{r.Crypto.String(), r.Math.String(), r.Sort.String()}, "\n")
}

// RAMConfig configures the memory families.
type RAMConfig struct {
	Alloc  alloc.Config
	Access ramaccess.Config
}

// RAMReport holds the memory family results and the host's total memory.
type RAMReport struct {
	TotalRAM uint64
	Alloc    alloc.Report
	Access   ramaccess.Report
}

func (r RAMReport) String() string {
	return fmt.Sprintf("total memory ... %s\n%s\n%s", humanize.IBytes(r.TotalRAM), r.Alloc, r.Access)
}

// StorageConfig configures the storage family.
type StorageConfig struct {
	Access storageaccess.Config
}

// StorageReport holds the storage family result and the free space of the
// host's storage.
type StorageReport struct {
	AvailStorage uint64
	Access       storageaccess.Report
}

func (r StorageReport) String() string {
	return fmt.Sprintf("available storage ... %s\n%s", humanize.IBytes(r.AvailStorage), r.Access)
}

// Config configures every family run by All.
type Config struct {
	CPU     CPUConfig
	RAM     RAMConfig
	Storage StorageConfig
}

// DefaultConfig returns every family's DefaultConfig.
func DefaultConfig() Config {
	return Config{
		CPU: CPUConfig{
			Crypto: crypto.DefaultConfig(),
			Math:   matmul.DefaultConfig(),
			Sort:   mergesort.DefaultConfig(),
		},
		RAM: RAMConfig{
			Alloc:  alloc.DefaultConfig(),
			Access: ramaccess.DefaultConfig(),
		},
		Storage: StorageConfig{
			Access: storageaccess.DefaultConfig(),
		},
	}
}

// Report is the aggregate of a full run.
type Report struct {
	Multithread bool
	CPU         CPUReport
	RAM         RAMReport
	Storage     StorageReport
}

func (r Report) String() string {
	return strings.Join([]string{r.CPU.String(), r.RAM.String(), r.Storage.String()}, "\n")
}

// CPU runs crypto, math and sort on the calling goroutine.
func (b *Bench) CPU(cfg CPUConfig) (CPUReport, error) {
	var (
		r   CPUReport
		err error
	)
	if r.Crypto, err = b.Crypto(cfg.Crypto); err != nil {
		return CPUReport{}, err
	}
	if r.Math, err = b.Math(cfg.Math); err != nil {
		return CPUReport{}, err
	}
	if r.Sort, err = b.Sort(cfg.Sort); err != nil {
		return CPUReport{}, err
	}
	return r, nil
}

// CPUMultithread runs the multithreaded crypto, math and sort.
func (b *Bench) CPUMultithread(cfg CPUConfig) (CPUReport, error) {
	var (
		r   CPUReport
		err error
	)
	if r.Crypto, err = b.CryptoMultithread(cfg.Crypto); err != nil {
		return CPUReport{}, err
	}
	if r.Math, err = b.MathMultithread(cfg.Math); err != nil {
		return CPUReport{}, err
	}
	if r.Sort, err = b.SortMultithread(cfg.Sort); err != nil {
		return CPUReport{}, err
	}
	return r, nil
}

// RAM runs allocation then access.
func (b *Bench) RAM(cfg RAMConfig) (RAMReport, error) {
	r := RAMReport{TotalRAM: b.caps.TotalRAM}

	var err error
	if r.Alloc, err = b.RAMAlloc(cfg.Alloc); err != nil {
		return RAMReport{}, err
	}
	if r.Access, err = b.RAMAccess(cfg.Access); err != nil {
		return RAMReport{}, err
	}
	return r, nil
}

// Storage runs the storage access family.
func (b *Bench) Storage(cfg StorageConfig) (StorageReport, error) {
	r := StorageReport{AvailStorage: b.caps.AvailStorage}

	var err error
	if r.Access, err = b.StorageAccess(cfg.Access); err != nil {
		return StorageReport{}, err
	}
	return r, nil
}

// All runs every family in sequence and stops at the first failure, which
// is returned as a *FamilyError.
func (b *Bench) All(cfg Config) (Report, error) {
	return b.all(cfg, b.CPU)
}

// AllMultithread is All with the multithreaded compute families. Memory and
// storage families have a single variant and run as in All.
func (b *Bench) AllMultithread(cfg Config) (Report, error) {
	r, err := b.all(cfg, b.CPUMultithread)
	r.Multithread = err == nil
	return r, err
}

func (b *Bench) all(cfg Config, cpu func(CPUConfig) (CPUReport, error)) (Report, error) {
	var (
		r   Report
		err error
	)
	if r.CPU, err = cpu(cfg.CPU); err != nil {
		return Report{}, err
	}
	if r.RAM, err = b.RAM(cfg.RAM); err != nil {
		return Report{}, err
	}
	if r.Storage, err = b.Storage(cfg.Storage); err != nil {
		return Report{}, err
	}
	return r, nil
}
