// 16 Oct 2026
/*

rama reads a protein structure, calculates the backbone phi and psi angles and draws a Ramachandran plot.

Usage:
 rama [options] file_or_code

Flags:
  -a	Print the angles on standard output, one phi,psi pair per line
  	in group order. A phi group ends on the C of a residue and the
  	psi group beside it on the N of the same residue, so a line
  	holds phi of one residue and psi of the one before. Pairs where
  	either angle is missing are left out.
  -c filename
    	Read settings from a toml file. Anything given on the command
    	line wins over the file.
  -e ext
    	Image type. png, jpg and gif always work. The gonum renderer
    	can also write svg, pdf, eps and tif.
  -l dest
    	Where to send log messages. A file name, or stdout or stderr.
    	By default, there are none.
  -r name
    	raster (default) or gonum.
  -s N
    	Site to download from. 0 is plain pdb files from the RCSB,
    	1 is gzipped files from the same place.
  -t title
    	Title for the top of the plot.
  -x	Strict. Broken ATOM lines and groups of atoms with no dihedral
  	angle stop the program. Without this, they are skipped.

If the argument is a file, it is read. The file can be gzipped. If not, the
argument is taken as an accession code like 1abc, with any extension removed.
We look for 1abc.pdb in the same directory and if it is not there, download
it and keep it there. The plot goes to 1abc_rama.png in the same directory.

Only the first model is read. Only old style pdb files are read, not mmcif.

The config file looks like

 base_url = "https://files.rcsb.org/download"
 fetch_ext = "pdb"
 image_ext = "svg"
 renderer = "gonum"
 size = 800
 log = "rama.log"

base_url, fetch_ext and size can only be set in the file.

Angles follow the IUPAC convention, so an alpha helix is near phi -57, psi -47.

*/
package main
