package model

// Outpoint references a previous transaction output
type Outpoint struct {
	TransactionID string `json:"transactionId"`
	Index         uint32 `json:"index"`
}

// ScriptPublicKey is the locking script of an output
type ScriptPublicKey struct {
	ScriptPublicKey string `json:"scriptPublicKey"`
	Version         int    `json:"version"`
}

// UTXOEntry holds the spendable value behind an outpoint
type UTXOEntry struct {
	Amount          string          `json:"amount"` // sompi
	ScriptPublicKey ScriptPublicKey `json:"scriptPublicKey"`
	BlockDAAScore   string          `json:"blockDaaScore"`
	IsCoinbase      bool            `json:"isCoinbase"`
}

// UTXO is an unspent transaction output as returned by the proxy
type UTXO struct {
	Address   string    `json:"address,omitempty"`
	Outpoint  Outpoint  `json:"outpoint"`
	UTXOEntry UTXOEntry `json:"utxoEntry"`
}

// RPCInput is a transaction input in proxy wire format
type RPCInput struct {
	PreviousOutpoint Outpoint `json:"previousOutpoint"`
	SignatureScript  string   `json:"signatureScript"`
	Sequence         uint64   `json:"sequence"`
	SigOpCount       int      `json:"sigOpCount"`
}

// RPCOutput is a transaction output in proxy wire format
type RPCOutput struct {
	Amount          string          `json:"amount"` // sompi
	ScriptPublicKey ScriptPublicKey `json:"scriptPublicKey"`
}

// RPCTransaction is a transaction in proxy wire format
type RPCTransaction struct {
	Version      int         `json:"version"`
	Inputs       []RPCInput  `json:"inputs"`
	Outputs      []RPCOutput `json:"outputs"`
	LockTime     string      `json:"lockTime"`
	SubnetworkID string      `json:"subnetworkId"`
	Gas          string      `json:"gas"`
	Payload      string      `json:"payload"`
}

// FeeBucket is one bucket of the fee estimate
type FeeBucket struct {
	FeeRate          uint64  `json:"feeRate"` // sompi per gram
	EstimatedSeconds float64 `json:"estimatedSeconds"`
}

// FeeEstimate is the mempool fee estimate
type FeeEstimate struct {
	PriorityBucket FeeBucket `json:"priorityBucket"`
	NormalBucket   FeeBucket `json:"normalBucket"`
	LowBucket      FeeBucket `json:"lowBucket"`
}

// TransactionStatus is the acceptance status of a submitted transaction
type TransactionStatus struct {
	TransactionID            string `json:"transactionId"`
	Status                   string `json:"status"`
	ConfirmingBlockHash      string `json:"confirmingBlockHash,omitempty"`
	ConfirmingBlockBlueScore uint64 `json:"confirmingBlockBlueScore,omitempty"`
}

// NodeInfo describes the node behind the proxy
type NodeInfo struct {
	ServerVersion   string `json:"serverVersion"`
	NetworkName     string `json:"networkName"`
	IsSynced        bool   `json:"isSynced"`
	IsUTXOIndexed   bool   `json:"isUtxoIndexed"`
	MempoolSize     uint64 `json:"mempoolSize"`
	VirtualDAAScore uint64 `json:"virtualDaaScore"`
}

// TransactionLogEntry is one line of transactions.log
type TransactionLogEntry struct {
	Timestamp string `json:"timestamp"`
	Wallet    string `json:"wallet"`
	TxID      string `json:"txId"`
	Recipient string `json:"recipient"`
	Amount    string `json:"amount"` // sompi
}
