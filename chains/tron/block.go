package tron

// Block is a full block as returned by the node
type Block struct {
	BlockID      string        `json:"blockID"`
	Header       BlockHeader   `json:"block_header"`
	Transactions []Transaction `json:"transactions,omitempty"`
}

// BlockHeader is the header part of a block
type BlockHeader struct {
	RawData          BlockHeaderData `json:"raw_data"`
	WitnessSignature string          `json:"witness_signature,omitempty"`
}

// BlockHeaderData holds the consensus fields of a block header
type BlockHeaderData struct {
	Number         int64  `json:"number"`
	Timestamp      int64  `json:"timestamp"`
	TxTrieRoot     string `json:"txTrieRoot,omitempty"`
	WitnessAddress string `json:"witness_address,omitempty"`
	ParentHash     string `json:"parentHash,omitempty"`
	Version        int32  `json:"version,omitempty"`
}

// Number returns the block height
func (b *Block) Number() int64 {
	return b.Header.RawData.Number
}

// BlockRef selects a block either by id (hash) or by height. Use BlockByID
// or BlockByNumber to construct one.
type BlockRef struct {
	idOrNum interface{}
}

// BlockByID refers to a block by its hash
func BlockByID(id string) BlockRef {
	return BlockRef{idOrNum: id}
}

// BlockByNumber refers to a block by its height
func BlockByNumber(num uint64) BlockRef {
	return BlockRef{idOrNum: num}
}

// IDOrNum returns the request value for the id_or_num field
func (r BlockRef) IDOrNum() interface{} {
	return r.idOrNum
}
