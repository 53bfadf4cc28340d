package ssi263

// phonemeEntry is a display-only record: the chip's phoneme mnemonic
// and an example word, used for tracing and the phoneme log dump.
// Grounded on original_source/qns/ssi263.py's PHONEMES table.
type phonemeEntry struct {
	name    string
	example string
}

var phonemeTable = map[byte]phonemeEntry{
	0x00: {"PA", "pause"},
	0x01: {"E", "bEEt"},
	0x02: {"E1", "bIt"},
	0x03: {"Y", "Yet"},
	0x04: {"YI", "bAby"},
	0x05: {"AY", "bAlt"},
	0x06: {"EH", "gEt"},
	0x07: {"EH1", "bEt"},
	0x08: {"EH2", "gEt"},
	0x09: {"EH3", "jAcket"},
	0x0A: {"A", "dAy"},
	0x0B: {"A1", "mAde"},
	0x0C: {"A2", "hAt"},
	0x0D: {"AW", "fAther"},
	0x0E: {"AW1", "fAll"},
	0x0F: {"AW2", "cAlt"},
	0x10: {"UH", "bOOk"},
	0x11: {"UH1", "lOOk"},
	0x12: {"UH2", "rOOm"},
	0x13: {"UH3", "fOOl"},
	0x14: {"O", "bOAt"},
	0x15: {"O1", "rOAd"},
	0x16: {"O2", "nOt"},
	0x17: {"IU", "yOU"},
	0x18: {"U", "yOU"},
	0x19: {"U1", "fOOd"},
	0x1A: {"ER", "bIRd"},
	0x1B: {"ER1", "hER"},
	0x1C: {"ER2", "lEARn"},
	0x1D: {"R", "Red"},
	0x1E: {"R1", "caR"},
	0x1F: {"R2", "gReat"},
	0x20: {"L", "Let"},
	0x21: {"L1", "caLL"},
	0x22: {"LF", "Leaf"},
	0x23: {"W", "Win"},
	0x24: {"B", "Bet"},
	0x25: {"D", "Dog"},
	0x26: {"KV", "sKy"},
	0x27: {"P", "Pot"},
	0x28: {"T", "Top"},
	0x29: {"K", "Kit"},
	0x2A: {"HV", "aHead"},
	0x2B: {"HVC", "aHead"},
	0x2C: {"HF", "Help"},
	0x2D: {"HFC", "Help"},
	0x2E: {"HN", "Horse"},
	0x2F: {"Z", "Zoo"},
	0x30: {"S", "See"},
	0x31: {"J", "aZure"},
	0x32: {"SCH", "SHip"},
	0x33: {"V", "Vest"},
	0x34: {"F", "Fan"},
	0x35: {"THV", "THis"},
	0x36: {"TH", "THin"},
	0x37: {"M", "Met"},
	0x38: {"N", "Net"},
	0x39: {"NG", "siNG"},
	0x3A: {"A", "lAst"},
	0x3B: {"OH", "cOUgh"},
	0x3C: {"U", "nEW"},
	0x3D: {"UH", "pUt"},
	0x3E: {"PA1", "pause"},
	0x3F: {"STOP", "stop"},
}
