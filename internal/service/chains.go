package service

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/cuongnguyenngoc/web3mail/internal/common"
	"github.com/cuongnguyenngoc/web3mail/internal/dto"
	"github.com/cuongnguyenngoc/web3mail/internal/model"
)

// ChainService serves per-network balance and gas lookups. Values are
// simulated: deterministic per chain+address so repeated queries agree, but
// not backed by any RPC call.
type ChainService interface {
	ListChains() map[string]model.ChainConfig
	GetBalance(chain, address string) (*dto.ChainBalanceResponse, error)
}

type chainServiceImpl struct{}

func NewChainService() ChainService {
	return &chainServiceImpl{}
}

func (s *chainServiceImpl) ListChains() map[string]model.ChainConfig {
	return model.ChainConfigs
}

func isValidAddress(address string) bool {
	return strings.HasPrefix(address, "0x") && len(address) == 42
}

func (s *chainServiceImpl) GetBalance(chain, address string) (*dto.ChainBalanceResponse, error) {
	cfg, ok := model.ChainConfigs[chain]
	if !ok {
		return nil, fmt.Errorf("%w: chain %q", common.ErrNotFound, chain)
	}
	if !isValidAddress(address) {
		return nil, fmt.Errorf("%w: invalid address %q", common.ErrInvalidInput, address)
	}

	sum := sha256.Sum256([]byte(chain + "|" + strings.ToLower(address)))
	seed := binary.BigEndian.Uint64(sum[:8])

	return &dto.ChainBalanceResponse{
		Chain:        chain,
		ChainID:      cfg.ChainID,
		Address:      address,
		NativeToken:  cfg.NativeToken,
		Balance:      float64(seed%100_000) / 1000.0,
		GasPriceGwei: 10 + float64(seed%900)/10.0,
	}, nil
}
