package main

import (
	"fmt"
	"math/rand/v2"

	"github.com/spf13/viper"

	"github.com/utkarsh5026/devbench/bench"
	"github.com/utkarsh5026/devbench/cpu/crypto"
	"github.com/utkarsh5026/devbench/internal/rng"
)

// setDefaults registers the per-family keys a config file may set. Flags
// and environment variables override them.
func setDefaults(v *viper.Viper) {
	def := bench.DefaultConfig()

	v.SetDefault("crypto.data_len", def.CPU.Crypto.DataLen)
	v.SetDefault("crypto.hash", "sha256")
	v.SetDefault("math.n", def.CPU.Math.N)
	v.SetDefault("sort.item_len", def.CPU.Sort.ItemLen)
	v.SetDefault("sort.data_len", def.CPU.Sort.DataLen)

	v.SetDefault("ram.alloc.data_len", def.RAM.Alloc.DataLen)
	v.SetDefault("ram.alloc.iters", def.RAM.Alloc.Iters)
	v.SetDefault("ram.access.seq_iters", def.RAM.Access.SeqIters)
	v.SetDefault("ram.access.seq_data_len", def.RAM.Access.SeqDataLen)
	v.SetDefault("ram.access.rand_iters", def.RAM.Access.RandIters)
	v.SetDefault("ram.access.rand_data_len", def.RAM.Access.RandDataLen)
	v.SetDefault("ram.access.concurr_iters", def.RAM.Access.ConcurrIters)
	v.SetDefault("ram.access.concurr_data_len", def.RAM.Access.ConcurrDataLen)

	v.SetDefault("storage.seq_iters", def.Storage.Access.SeqIters)
	v.SetDefault("storage.seq_data_len_mb", def.Storage.Access.SeqDataLenMB)
	v.SetDefault("storage.rand_iters", def.Storage.Access.RandIters)
	v.SetDefault("storage.rand_data_len_mb", def.Storage.Access.RandDataLenMB)
	v.SetDefault("storage.chunk_size", def.Storage.Access.ChunkSize)
}

// loadConfig builds the bench configuration from v. With a non-zero seed
// every family gets its own generator derived from it.
func loadConfig(v *viper.Viper) (bench.Config, error) {
	cfg := bench.DefaultConfig()

	hash, err := crypto.ParseHash(v.GetString("crypto.hash"))
	if err != nil {
		return bench.Config{}, fmt.Errorf("config: %w", err)
	}

	seed := v.GetUint64("seed")
	next := func() *rand.Rand {
		if seed == 0 {
			return nil
		}
		seed++
		return rng.New(seed)
	}

	duration := v.GetDuration("duration")

	cfg.CPU.Crypto.Duration = duration
	cfg.CPU.Crypto.DataLen = v.GetInt("crypto.data_len")
	cfg.CPU.Crypto.Hash = hash
	cfg.CPU.Crypto.Rand = next()

	cfg.CPU.Math.Duration = duration
	cfg.CPU.Math.N = v.GetInt("math.n")
	cfg.CPU.Math.Rand = next()

	cfg.CPU.Sort.Duration = duration
	cfg.CPU.Sort.ItemLen = v.GetInt("sort.item_len")
	cfg.CPU.Sort.DataLen = v.GetInt("sort.data_len")
	cfg.CPU.Sort.Rand = next()

	cfg.RAM.Alloc.DataLen = v.GetInt("ram.alloc.data_len")
	cfg.RAM.Alloc.Iters = v.GetInt("ram.alloc.iters")

	cfg.RAM.Access.SeqIters = v.GetInt("ram.access.seq_iters")
	cfg.RAM.Access.SeqDataLen = v.GetInt("ram.access.seq_data_len")
	cfg.RAM.Access.RandIters = v.GetInt("ram.access.rand_iters")
	cfg.RAM.Access.RandDataLen = v.GetInt("ram.access.rand_data_len")
	cfg.RAM.Access.ConcurrIters = v.GetInt("ram.access.concurr_iters")
	cfg.RAM.Access.ConcurrDataLen = v.GetInt("ram.access.concurr_data_len")
	cfg.RAM.Access.PinWorkers = v.GetBool("pin")
	cfg.RAM.Access.Rand = next()

	cfg.Storage.Access.Dir = v.GetString("dir")
	cfg.Storage.Access.SeqIters = v.GetInt("storage.seq_iters")
	cfg.Storage.Access.SeqDataLenMB = v.GetInt("storage.seq_data_len_mb")
	cfg.Storage.Access.RandIters = v.GetInt("storage.rand_iters")
	cfg.Storage.Access.RandDataLenMB = v.GetInt("storage.rand_data_len_mb")
	cfg.Storage.Access.ChunkSize = v.GetInt("storage.chunk_size")
	cfg.Storage.Access.Rand = next()

	return cfg, nil
}
