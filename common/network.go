package common

type Network string

const (
	NetworkMainnet Network = "mainnet"
	NetworkTestnet Network = "testnet"
)

var supportedNetworks = map[Network]struct{}{
	NetworkMainnet: {},
	NetworkTestnet: {},
}

// Default ord data service endpoints per network.
var defaultOrdEndpoints = map[Network]string{
	NetworkMainnet: "https://ordinals.com",
	NetworkTestnet: "https://testnet.ordinals.com",
}

func (n Network) IsSupported() bool {
	_, ok := supportedNetworks[n]
	return ok
}

func (n Network) DefaultOrdEndpoint() string {
	return defaultOrdEndpoints[n]
}

func (n Network) String() string {
	return string(n)
}
