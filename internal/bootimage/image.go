package bootimage

// Cells is the default boot image embedded in this module: the Nga/RETRO
// "rx" kernel image, taken verbatim from the reference C implementation's
// ngaImage data array (crcx/rx, rx.c). It is shipped as data, not
// reimplemented logic -- the in-image Forth compiler, dictionary builder,
// and word definitions it contains are out of scope for this module
// (spec.md Section 1) and are executed by the VM exactly as any other
// loaded image would be.
//
// Layout matches the "version 1" image convention: cell 2 holds the
// dictionary head, cell 3 the heap pointer, cell 4 a build marker, and the
// text-input buffer lives at the compile-time constant TIBAddr (1024),
// rather than being read from cell 7 as later images do. See Layout below.
var Cells = []int32{
	1793, -1, 1001, 1536, 202104, 0, 10, 1, 10, 2, 10, 3,
	10, 4, 10, 5, 10, 6, 10, 7, 10, 8, 10, 9,
	10, 10, 11, 10, 12, 10, 13, 10, 14, 10, 15, 10,
	16, 10, 17, 10, 18, 10, 19, 10, 20, 10, 21, 10,
	22, 10, 23, 10, 24, 10, 25, 10, 68223234, 1, 2575, 85000450,
	1, 656912, 0, 0, 268505089, 63, 62, 285281281, 0, 63, 2063, 10,
	101384453, 0, 9, 10, 2049, 56, 25, 459011, 76, 524546, 76, 302256641,
	1, 10, 16974595, 0, 50529798, 10, 25, 524547, 95, 50529798, 10, 17108738,
	1, 251790353, 101777669, 1, 17565186, 86, 524545, 90, 64, 167838467, -1, 134287105,
	3, 59, 659457, 3, 459023, 107, 2049, 56, 25, 2049, 107, 1793,
	114, 2049, 114, 117506307, 0, 107, 0, 524545, 25, 112, 168820993, 0,
	126, 1642241, 126, 134283523, 7, 112, 1793, 107, 7, 524545, 2049, 107,
	1793, 107, 16846593, 126, 141, 140, 1793, 64, 16846593, 126, 112, 140,
	1793, 64, 7, 10, 659713, 1, 659713, 2, 659713, 3, 1793, 168,
	17108737, 3, 2, 524559, 107, 2049, 107, 2049, 107, 2049, 121, 168820998,
	2, 0, 0, 167841793, 181, 5, 17826049, 0, 181, 2, 15, 25,
	524546, 164, 134287105, 182, 95, 2305, 183, 459023, 191, 134287361, 182, 186,
	659201, 181, 2049, 56, 25, 84152833, 48, 286458116, 10, 459014, 206, 184618754,
	45, 25, 16974851, -1, 168886532, 1, 134284289, 1, 215, 134284289, 0, 206,
	660227, 32, 0, 0, 112, 114, 101, 102, 105, 120, 58, 95,
	0, 285278479, 232, 7, 2576, 524546, 81, 1641217, 1, 167838467, 229, 2049,
	245, 2049, 241, 524545, 232, 201, 17826050, 231, 0, 2572, 2563, 2049,
	222, 1793, 133, 459023, 133, 17760513, 146, 3, 166, 8, 251727617, 3,
	2, 2049, 160, 16, 168820993, -1, 126, 2049, 201, 2049, 160, 459023,
	133, 285282049, 3, 2, 134287105, 126, 280, 524545, 1793, 107, 16846593, 3,
	0, 107, 8, 659201, 3, 524545, 25, 112, 17043201, 3, 7, 2049,
	112, 2049, 107, 268505092, 126, 1642241, 126, 656131, 659201, 3, 524545, 7,
	112, 2049, 107, 459009, 19, 112, 459009, 54, 112, 459009, 15, 112,
	459009, 17, 112, 1793, 5, 10, 524546, 160, 134284303, 162, 1807, 0,
	0, 0, 1642241, 231, 285282049, 347, 1, 459012, 342, 117509889, 181, 342,
	134287105, 347, 201, 16845825, 0, 357, 339, 1793, 64, 1793, 371, 17826050,
	347, 251, 8, 117506305, 348, 360, 64, 2116, 11340, 11700, 11400, 13685,
	13104, 12432, 12402, 9603, 9801, 11514, 11413, 11110, 12528, 11948, 10302, 13340,
	9700, 13455, 12753, 10500, 10670, 12654, 13320, 11960, 13908, 10088, 10605, 11865,
	11025, 0, 2049, 201, 987393, 1, 1793, 107, 524546, 447, 2049, 445,
	2049, 445, 17891588, 2, 447, 8, 17045505, -24, -16, 17043736, -8, 1118488,
	1793, 107, 17043202, 1, 169021201, 2049, 56, 25, 33883396, 101450758, 6404, 459011,
	437, 34668804, 2, 2049, 434, 524545, 379, 437, 302056196, 379, 659969, 1,
	0, 9, 152, 100, 117, 112, 0, 456, 11, 152, 100, 114,
	111, 112, 0, 463, 13, 152, 115, 119, 97, 112, 0, 471,
	21, 152, 99, 97, 108, 108, 0, 479, 26, 152, 101, 113,
	63, 0, 487, 28, 152, 45, 101, 113, 63, 0, 494, 30,
	152, 108, 116, 63, 0, 502, 32, 152, 103, 116, 63, 0,
	509, 34, 152, 102, 101, 116, 99, 104, 0, 516, 36, 152,
	115, 116, 111, 114, 101, 0, 525, 38, 152, 43, 0, 534,
	40, 152, 45, 0, 539, 42, 152, 42, 0, 544, 44, 152,
	47, 109, 111, 100, 0, 549, 46, 152, 97, 110, 100, 0,
	557, 48, 152, 111, 114, 0, 564, 50, 152, 120, 111, 114,
	0, 570, 52, 152, 115, 104, 105, 102, 116, 0, 577, 333,
	158, 112, 117, 115, 104, 0, 586, 336, 158, 112, 111, 112,
	0, 594, 330, 158, 48, 59, 0, 601, 56, 146, 102, 101,
	116, 99, 104, 45, 110, 101, 120, 116, 0, 607, 59, 146,
	115, 116, 111, 114, 101, 45, 110, 101, 120, 116, 0, 621,
	222, 146, 115, 58, 116, 111, 45, 110, 117, 109, 98, 101,
	114, 0, 635, 95, 146, 115, 58, 101, 113, 63, 0, 650,
	81, 146, 115, 58, 108, 101, 110, 103, 116, 104, 0, 659,
	64, 146, 99, 104, 111, 111, 115, 101, 0, 671, 74, 152,
	105, 102, 0, 681, 72, 146, 45, 105, 102, 0, 687, 262,
	158, 112, 114, 101, 102, 105, 120, 58, 40, 0, 694, 126,
	133, 67, 111, 109, 112, 105, 108, 101, 114, 0, 706, 3,
	133, 72, 101, 97, 112, 0, 718, 107, 146, 44, 0, 726,
	121, 146, 115, 44, 0, 731, 127, 158, 59, 0, 737, 289,
	158, 91, 0, 742, 305, 158, 93, 0, 747, 2, 133, 68,
	105, 99, 116, 105, 111, 110, 97, 114, 121, 0, 752, 159,
	146, 100, 58, 108, 105, 110, 107, 0, 766, 160, 146, 100,
	58, 120, 116, 0, 776, 162, 146, 100, 58, 99, 108, 97,
	115, 115, 0, 784, 164, 146, 100, 58, 110, 97, 109, 101,
	0, 795, 146, 146, 99, 108, 97, 115, 115, 58, 119, 111,
	114, 100, 0, 805, 158, 146, 99, 108, 97, 115, 115, 58,
	109, 97, 99, 114, 111, 0, 819, 133, 146, 99, 108, 97,
	115, 115, 58, 100, 97, 116, 97, 0, 834, 166, 146, 100,
	58, 97, 100, 100, 45, 104, 101, 97, 100, 101, 114, 0,
	848, 263, 158, 112, 114, 101, 102, 105, 120, 58, 35, 0,
	864, 269, 158, 112, 114, 101, 102, 105, 120, 58, 58, 0,
	876, 283, 158, 112, 114, 101, 102, 105, 120, 58, 38, 0,
	888, 267, 158, 112, 114, 101, 102, 105, 120, 58, 36, 0,
	900, 320, 158, 114, 101, 112, 101, 97, 116, 0, 912, 322,
	158, 97, 103, 97, 105, 110, 0, 922, 369, 146, 105, 110,
	116, 101, 114, 112, 114, 101, 116, 0, 931, 201, 146, 100,
	58, 108, 111, 111, 107, 117, 112, 0, 944, 152, 146, 99,
	108, 97, 115, 115, 58, 112, 114, 105, 109, 105, 116, 105,
	118, 101, 0, 956, 4, 133, 86, 101, 114, 115, 105, 111,
	110, 0, 975, 416, 146, 105, 0, 986, 107, 146, 100, 0,
	991, 410, 146, 114, 0, 996, 339, 146, 101, 114, 114, 58,
	110, 111, 116, 102, 111, 117, 110, 100, 0,
}

// Size is the number of cells in Cells.
var Size = len(Cells)

// Layout describes where a loaded image keeps its text-input buffer,
// resolving the two image-layout variants documented in spec.md Section 9's
// open question about dictionary-offset constants: older images (like the
// embedded Cells above) use the compile-time constant TIBAddr, while newer
// images publish their TIB address in cell 7 instead. vm.Machine.ResolveTIB
// tells them apart by cell 4 (the version marker): only an image whose
// cell 4 is zero and whose cell 7 is non-zero gets its TIB from cell 7;
// every other image uses TIBAddr.
type Layout struct {
	TIBAddr   int32
	UsesCell7 bool
}

// DefaultLayout is the layout of the embedded Cells image.
var DefaultLayout = Layout{TIBAddr: 1024, UsesCell7: false}
