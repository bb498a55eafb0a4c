package engine

/*
#include <libraw/libraw.h>
*/
import "C"

import "fmt"

// mountName translates the engine's camera-mount identifier into a readable
// name. Identifiers outside the table are reported numerically rather than
// dropped, so serialized metadata stays round-trippable.
func mountName(m int) string {
	switch m {
	case C.LIBRAW_MOUNT_Unknown:
		return "Unknown"
	case C.LIBRAW_MOUNT_Canon_EF:
		return "Canon EF"
	case C.LIBRAW_MOUNT_Canon_EF_S:
		return "Canon EF-S"
	case C.LIBRAW_MOUNT_Canon_EF_M:
		return "Canon EF-M"
	case C.LIBRAW_MOUNT_Canon_RF:
		return "Canon RF"
	case C.LIBRAW_MOUNT_Nikon_F:
		return "Nikon F"
	case C.LIBRAW_MOUNT_Nikon_Z:
		return "Nikon Z"
	case C.LIBRAW_MOUNT_Nikon_CX:
		return "Nikon CX"
	case C.LIBRAW_MOUNT_Sony_E:
		return "Sony E"
	case C.LIBRAW_MOUNT_Minolta_A:
		return "Minolta A"
	case C.LIBRAW_MOUNT_FT:
		return "Four Thirds"
	case C.LIBRAW_MOUNT_mFT:
		return "Micro Four Thirds"
	case C.LIBRAW_MOUNT_Fuji_X:
		return "Fujifilm X"
	case C.LIBRAW_MOUNT_Fuji_GF:
		return "Fujifilm G"
	case C.LIBRAW_MOUNT_Pentax_K:
		return "Pentax K"
	case C.LIBRAW_MOUNT_Pentax_645:
		return "Pentax 645"
	case C.LIBRAW_MOUNT_Pentax_Q:
		return "Pentax Q"
	case C.LIBRAW_MOUNT_Leica_M:
		return "Leica M"
	case C.LIBRAW_MOUNT_Leica_R:
		return "Leica R"
	case C.LIBRAW_MOUNT_Leica_S:
		return "Leica S"
	case C.LIBRAW_MOUNT_Leica_SL:
		return "Leica SL"
	case C.LIBRAW_MOUNT_Leica_TL:
		return "Leica TL"
	case C.LIBRAW_MOUNT_LPS_L:
		return "L-Mount"
	case C.LIBRAW_MOUNT_Hasselblad_H:
		return "Hasselblad H"
	case C.LIBRAW_MOUNT_Hasselblad_V:
		return "Hasselblad V"
	case C.LIBRAW_MOUNT_Hasselblad_XCD:
		return "Hasselblad XCD"
	case C.LIBRAW_MOUNT_Samsung_NX:
		return "Samsung NX"
	case C.LIBRAW_MOUNT_Sigma_X3F:
		return "Sigma SA"
	case C.LIBRAW_MOUNT_FixedLens:
		return "Fixed Lens"
	default:
		return fmt.Sprintf("Mount(%d)", m)
	}
}
