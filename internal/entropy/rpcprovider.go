package entropy

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/rpcclient"
)

// RPCConfig mirrors the teacher's bitcoin.Config shape (Host, User, Pass)
// for connecting to a Bitcoin Core node over RPC.
type RPCConfig struct {
	Host string
	User string
	Pass string
}

// RPCBlockMetadataProvider fetches block metadata from a live Bitcoin Core
// node. It implements BlockMetadataProvider; the core never talks to
// Bitcoin RPC directly, only through this collaborator (spec.md §6).
type RPCBlockMetadataProvider struct {
	rpc *rpcclient.Client
}

// NewRPCBlockMetadataProvider dials a Bitcoin Core node in HTTP-POST mode
// (no websocket notifications needed — ES is a pull-only consumer).
func NewRPCBlockMetadataProvider(cfg RPCConfig) (*RPCBlockMetadataProvider, error) {
	connCfg := &rpcclient.ConnConfig{
		Host:         cfg.Host,
		User:         cfg.User,
		Pass:         cfg.Pass,
		HTTPPostMode: true,
		DisableTLS:   true,
	}
	client, err := rpcclient.New(connCfg, nil)
	if err != nil {
		return nil, fmt.Errorf("entropy: connecting to bitcoin rpc: %w", err)
	}
	return &RPCBlockMetadataProvider{rpc: client}, nil
}

// Shutdown releases the underlying RPC client.
func (p *RPCBlockMetadataProvider) Shutdown() {
	p.rpc.Shutdown()
}

// GetBlock implements BlockMetadataProvider.
func (p *RPCBlockMetadataProvider) GetBlock(height int64) (BlockMetadata, error) {
	hash, err := p.rpc.GetBlockHash(height)
	if err != nil {
		return BlockMetadata{}, fmt.Errorf("%w: getblockhash(%d): %v", ErrBlockMetadataAbsent, height, err)
	}
	header, err := p.rpc.GetBlockHeaderVerbose(hash)
	if err != nil {
		return BlockMetadata{}, fmt.Errorf("%w: getblockheader(%s): %v", ErrBlockMetadataAbsent, hash, err)
	}

	merkleHash, err := chainhash.NewHashFromStr(header.MerkleRoot)
	if err != nil {
		return BlockMetadata{}, fmt.Errorf("%w: invalid merkle root: %v", ErrBlockMetadataAbsent, err)
	}

	var hashBytes, merkleBytes [32]byte
	copy(hashBytes[:], reverseBytes(hash.CloneBytes()))
	copy(merkleBytes[:], reverseBytes(merkleHash.CloneBytes()))

	return BlockMetadata{
		Hash:       hashBytes,
		MerkleRoot: merkleBytes,
		Nonce:      uint32(header.Nonce),
		Timestamp:  uint32(header.Time),
	}, nil
}

// reverseBytes reverses a byte slice without mutating the caller's copy,
// matching chainhash's internal byte order when building raw seed material.
func reverseBytes(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}

// FixtureBlockMetadataProvider is a deterministic in-memory provider for
// tests and for nodes running without live RPC access, loaded from a fixed
// table rather than a wall-clock-derived mock (never substitutes
// wall-clock entropy, per spec.md §4.1 failure semantics).
type FixtureBlockMetadataProvider struct {
	Blocks map[int64]BlockMetadata
}

// NewFixtureBlockMetadataProvider builds a provider from an explicit table.
func NewFixtureBlockMetadataProvider(blocks map[int64]BlockMetadata) *FixtureBlockMetadataProvider {
	return &FixtureBlockMetadataProvider{Blocks: blocks}
}

// GetBlock implements BlockMetadataProvider.
func (p *FixtureBlockMetadataProvider) GetBlock(height int64) (BlockMetadata, error) {
	meta, ok := p.Blocks[height]
	if !ok {
		return BlockMetadata{}, fmt.Errorf("%w: height %d", ErrBlockMetadataAbsent, height)
	}
	return meta, nil
}

// ParseHexHash32 decodes a 64-char hex string into a 32-byte array, for
// building FixtureBlockMetadataProvider tables from literal hex strings.
func ParseHexHash32(s string) ([32]byte, error) {
	var out [32]byte
	b, err := hex.DecodeString(s)
	if err != nil {
		return out, err
	}
	if len(b) != 32 {
		return out, fmt.Errorf("entropy: expected 32 bytes, got %d", len(b))
	}
	copy(out[:], b)
	return out, nil
}
